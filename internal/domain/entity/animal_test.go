package entity

import (
	"testing"

	"github.com/incognito1025/fauna-go/internal/domain/valueobject"
)

func TestNewAnimal(t *testing.T) {
	table, _ := valueobject.NewPointTable(map[string]int{"fox": 10})

	animal := NewAnimal("ab12", "fox", table)

	if animal.ID() != "ab12" {
		t.Errorf("Expected ID ab12, got %s", animal.ID())
	}
	if animal.Name() != "fox" {
		t.Errorf("Expected name fox, got %s", animal.Name())
	}
	points, ok := animal.Points()
	if !ok || points != 10 {
		t.Errorf("Expected 10 points, got %d (present=%v)", points, ok)
	}
	if p := animal.PointsPtr(); p == nil || *p != 10 {
		t.Errorf("Expected points pointer to 10, got %v", p)
	}
}

func TestNewAnimal_UnknownName(t *testing.T) {
	table, _ := valueobject.NewPointTable(map[string]int{"fox": 10})

	animal := NewAnimal("ab12", "unicorn", table)

	if _, ok := animal.Points(); ok {
		t.Error("Expected no points for unknown animal")
	}
	if animal.PointsOrZero() != 0 {
		t.Errorf("Expected zero points, got %d", animal.PointsOrZero())
	}
}

func TestRestoreAnimal(t *testing.T) {
	seven := 7
	animal := RestoreAnimal("cd34", "owl", &seven)
	seven = 99

	if animal.PointsOrZero() != 7 {
		t.Errorf("Expected restored points 7, got %d", animal.PointsOrZero())
	}

	empty := RestoreAnimal("ef56", "unicorn", nil)
	if empty.PointsPtr() != nil {
		t.Error("Expected nil points pointer for restored animal without points")
	}
}

func TestAnimal_RenameKeepsID(t *testing.T) {
	table, _ := valueobject.NewPointTable(map[string]int{"fox": 10, "owl": 7})
	animal := NewAnimal("ab12", "fox", table)

	renamed := animal.Rename("owl", table)

	if renamed.ID() != animal.ID() {
		t.Errorf("Expected ID %s to be kept, got %s", animal.ID(), renamed.ID())
	}
	if renamed.Name() != "owl" || renamed.PointsOrZero() != 7 {
		t.Errorf("Expected owl with 7 points, got %s with %d", renamed.Name(), renamed.PointsOrZero())
	}
	if animal.Name() != "fox" {
		t.Error("Expected original animal to be unchanged")
	}
}
