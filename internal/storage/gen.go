package storage

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --structname MockRepository --name Repository
