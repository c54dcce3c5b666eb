package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-research/internal/datasource DataSource
//go:generate mockgen -destination=./mock_cache.go -package=mocks github.com/rxtech-lab/argo-research/internal/system/cache Cache
//go:generate mockgen -destination=./mock_stage.go -package=mocks github.com/rxtech-lab/argo-research/internal/system Stage
