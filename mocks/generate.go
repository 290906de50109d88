package mocks

//go:generate mockgen -destination=./mock_runner.go -package=mocks github.com/deixis/ftpilot/internal/batch Runner
//go:generate mockgen -destination=./mock_store.go -package=mocks github.com/deixis/ftpilot/internal/report Store
