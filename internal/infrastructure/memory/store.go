// Package memory implementa el almacén de entidades en memoria: productos, proveedores,
// movimientos y usuarios. Es el driver por defecto (STORAGE_DRIVER=memory) y el que usan los tests.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// Store dueño exclusivo de las colecciones. Los repositorios devuelven copias.
type Store struct {
	mu        sync.RWMutex
	writer    sync.Mutex // único escritor del ledger (ver TxRunner)
	products  map[string]entity.Product
	suppliers map[string]entity.Supplier
	movements []entity.Movement
	users     map[string]entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		suppliers: make(map[string]entity.Supplier),
		movements: make([]entity.Movement, 0),
		users:     make(map[string]entity.User),
	}
}

func cloneProduct(p entity.Product) entity.Product {
	if p.ExpiryDate != nil {
		d := *p.ExpiryDate
		p.ExpiryDate = &d
	}
	return p
}

func cloneMovement(m entity.Movement) entity.Movement {
	if m.UnitCost != nil {
		c := *m.UnitCost
		m.UnitCost = &c
	}
	return m
}

func sortProducts(list []entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}
