package sales

import "sync"

// monthLocks serializa las escrituras por clave de mes (YYYY-MM). Dos
// cargas concurrentes del mismo mes se aplican una después de la otra;
// meses distintos no se bloquean entre sí. Los mutex se crean bajo
// demanda y no se liberan: hay a lo sumo un puñado de meses activos.
type monthLocks struct {
	mu sync.Map // string -> *sync.Mutex
}

// Lock toma el mutex del mes y devuelve la función para soltarlo.
func (l *monthLocks) Lock(key string) (unlock func()) {
	v, _ := l.mu.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
