package services

import (
	appErr "github.com/starwars-blog/api/pkg/errors"
)

// Messages returned to clients. The wording is part of the HTTP contract.
const (
	MsgNoUsers       = "No users"
	MsgUserMissing   = "User doesn't exists"
	MsgUserExists    = "User already exists"
	MsgNoPeople      = "No people"
	MsgPersonMissing = "Person doesn't exist"
	MsgPersonExists  = "Person already exists"
	MsgNoPlanets     = "No planets"
	MsgPlanetMissing = "Planet doesn't exist"
	MsgPlanetExists  = "Planet already exists"
	MsgNoFavorites   = "No favorites"
)

// notFoundAs replaces a repository not_found error with msg and passes other errors through.
func notFoundAs(err error, msg string) error {
	if appErr.IsCode(err, appErr.CodeNotFound) {
		return appErr.Wrap(err, appErr.CodeNotFound, msg)
	}
	return err
}

func nonEmpty[T any](items []T, msg string) ([]T, error) {
	if len(items) == 0 {
		return nil, appErr.New(appErr.CodeNotFound, msg)
	}
	return items, nil
}
