package inmemdb

import (
	"sync"

	"github.com/trezcool/placement/core/directory"
)

type (
	DB struct {
		student *studentTable
	}

	// studentTable keeps rows in insertion order; index maps IDs to positions in rows.
	studentTable struct {
		rows  []*directory.Student
		index map[string]int
		pk    int
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{index: make(map[string]int)},
	}
}
