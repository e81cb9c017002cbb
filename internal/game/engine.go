package game

// Engine движок разрешения спина: генерация поля, кластеры, каскады, множители и бонус.
// Чистые вычисления поверх каталога и источника случайности
type Engine struct {
	catalog *Catalog
	rng     RandomSource
}

func NewEngine(catalog *Catalog, rng RandomSource) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = NewRandomSource()
	}
	return &Engine{
		catalog: catalog,
		rng:     rng,
	}
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}
