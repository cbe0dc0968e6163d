package post

import (
	"fmt"

	"anoa.com/fedipost/internal/entity"
	postDto "anoa.com/fedipost/internal/modules/post/dto"
)

var wireToStorage = map[postDto.Visibility]entity.Visibility{
	postDto.VisibilityPublic:        entity.VisibilityPublic,
	postDto.VisibilityHome:          entity.VisibilityHome,
	postDto.VisibilityFollowers:     entity.VisibilityFollowers,
	postDto.VisibilityDirectMessage: entity.VisibilityDirectMessage,
}

var storageToWire = func() map[entity.Visibility]postDto.Visibility {
	m := make(map[entity.Visibility]postDto.Visibility, len(wireToStorage))
	for wire, stored := range wireToStorage {
		m[stored] = wire
	}
	return m
}()

// VisibilityToStorage maps the wire vocabulary to the storage vocabulary.
func VisibilityToStorage(v postDto.Visibility) (entity.Visibility, error) {
	stored, ok := wireToStorage[v]
	if !ok {
		return "", fmt.Errorf("unknown visibility %q", v)
	}
	return stored, nil
}

// VisibilityToWire maps the storage vocabulary to the wire vocabulary.
func VisibilityToWire(v entity.Visibility) (postDto.Visibility, error) {
	wire, ok := storageToWire[v]
	if !ok {
		return "", fmt.Errorf("unknown stored visibility %q", v)
	}
	return wire, nil
}
