package repository

// Repos agrupa los repositorios atados a una misma transacción (unidad de trabajo).
type Repos struct {
	Items      ItemRepository
	Locations  LocationRepository
	Warehouses WarehouseRepository
	Lots       LotRepository
	Stock      StockRepository
	Movements  MovementRepository
}
