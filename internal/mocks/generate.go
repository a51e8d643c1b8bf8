package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DatasetUnpacker --dir ../domain/playerstats --output domain/playerstats --outpkg playerstatsmock --filename dataset_unpacker_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TableLoader --dir ../domain/playerstats --output domain/playerstats --outpkg playerstatsmock --filename table_loader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TableExporter --dir ../domain/playerstats --output domain/playerstats --outpkg playerstatsmock --filename table_exporter_mock.go
