// Package redis cachea las consultas a los directorios de mascotas y usuarios.
// Solo se cachean resultados encontrados; si Redis falla se consulta el directorio.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gestion-citas/internal/domain/appointments"
	"gestion-citas/internal/domain/pets"
	"gestion-citas/internal/domain/users"
	"gestion-citas/internal/platform/logger"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 5 * time.Minute
	keyPrefix  = "gestion-citas:"
)

type cache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	kind   string
	log    logger.Logger
}

func newCache[T any](client *goredis.Client, ttl time.Duration, kind string, log logger.Logger) cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return cache[T]{client: client, ttl: ttl, kind: kind, log: log}
}

func (c cache[T]) key(id string) string {
	return keyPrefix + c.kind + ":" + id
}

// lookup intenta Redis y, si no hay hit, delega en load.
func (c cache[T]) lookup(ctx context.Context, id string, load func(context.Context, string) (T, bool, error)) (T, bool, error) {
	var zero T

	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, true, nil
		}
		c.log.Warn("discarding corrupt cache entry", map[string]any{"kind": c.kind, "id": id})
	case errors.Is(err, goredis.Nil):
	default:
		c.log.Warn("redis get failed", map[string]any{"kind": c.kind, "id": id, "err": err})
	}

	v, found, err := load(ctx, id)
	if err != nil || !found {
		return zero, found, err
	}

	if b, jerr := json.Marshal(v); jerr == nil {
		if serr := c.client.Set(ctx, c.key(id), b, c.ttl).Err(); serr != nil {
			c.log.Warn("redis set failed", map[string]any{"kind": c.kind, "id": id, "err": serr})
		}
	}
	return v, true, nil
}

type PetDirectory struct {
	inner appointments.PetDirectory
	cache cache[pets.Pet]
}

func NewPetDirectory(inner appointments.PetDirectory, client *goredis.Client, ttl time.Duration, log logger.Logger) *PetDirectory {
	return &PetDirectory{inner: inner, cache: newCache[pets.Pet](client, ttl, "pet", log)}
}

func (d *PetDirectory) FindByID(ctx context.Context, id string) (pets.Pet, bool, error) {
	return d.cache.lookup(ctx, id, d.inner.FindByID)
}

type UserDirectory struct {
	inner appointments.UserDirectory
	cache cache[users.User]
}

func NewUserDirectory(inner appointments.UserDirectory, client *goredis.Client, ttl time.Duration, log logger.Logger) *UserDirectory {
	return &UserDirectory{inner: inner, cache: newCache[users.User](client, ttl, "user", log)}
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (users.User, bool, error) {
	return d.cache.lookup(ctx, id, d.inner.FindByID)
}
