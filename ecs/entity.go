package ecs

import "fmt"

// Entity identifies an actor in a world. The slot lives in the low half and
// a generation counter in the high half; destroying an entity bumps its
// slot's generation so old handles stop resolving.
type Entity uint64

type entityID uint32
type generation uint32

const slotBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<slotBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(e) }
func (e Entity) generation() generation { return generation(e >> slotBits) }

// Slot is the index used by sparse sets.
func (e Entity) Slot() int {
	return int(e.id())
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d:%d)", e.id(), e.generation())
}

// Valid is false for the zero handle; slot 0 is never handed out.
func (e Entity) Valid() bool {
	return e.id() != 0
}
