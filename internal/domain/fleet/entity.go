package fleet

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyCarName   = errors.New("car name cannot be empty")
	ErrInvalidStatus  = errors.New("invalid administrative status")
	ErrEmptyBranchRef = errors.New("car must belong to a branch")
)

type Car struct {
	id       uuid.UUID
	branchID uuid.UUID
	name     string
	plate    string
	status   AdminStatus
}

func NewCar(id, branchID uuid.UUID, name, plate string, status AdminStatus) (*Car, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCarName
	}
	if branchID == uuid.Nil {
		return nil, ErrEmptyBranchRef
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Car{
		id:       id,
		branchID: branchID,
		name:     name,
		plate:    strings.TrimSpace(plate),
		status:   status,
	}, nil
}

func (c *Car) ID() uuid.UUID       { return c.id }
func (c *Car) BranchID() uuid.UUID { return c.branchID }
func (c *Car) Name() string        { return c.name }
func (c *Car) Plate() string       { return c.plate }
func (c *Car) Status() AdminStatus { return c.status }

// Branch is pure reference data owned by the CRUD collaborator.
type Branch struct {
	ID       uuid.UUID
	Name     string
	Location string
}
