// Package identity guarda el client id estable que acompaña cada request de chat.
package identity

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StorageKey es la clave fija bajo la cual se persiste el client id.
const StorageKey = "chat_client_id"

var ErrEmptyClientID = errors.New("identity: empty client id")

// Store persiste un unico client id.
type Store interface {
	// Get devuelve el id guardado y si existe.
	Get(ctx context.Context) (string, bool, error)
	// SetIfAbsent guarda id solo si no hay uno; devuelve el id vigente.
	SetIfAbsent(ctx context.Context, id string) (string, error)
}

// Generator produce un client id nuevo.
type Generator func() string

// NewClientID genera un UUID aleatorio, o un id timestamp+random si el
// generador criptografico falla.
func NewClientID() string {
	return newClientID(uuid.NewRandom, time.Now)
}

func newClientID(random func() (uuid.UUID, error), now func() time.Time) string {
	if id, err := random(); err == nil {
		return id.String()
	}
	return "cid-" + strconv.FormatInt(now().UnixMilli(), 10) + "-" + strconv.FormatUint(rand.Uint64(), 36)
}

// Ensure lee el client id del store y lo genera y guarda una sola vez si falta.
func Ensure(ctx context.Context, store Store, gen Generator) (string, error) {
	if store == nil {
		return "", errors.New("identity: store not configured")
	}
	if gen == nil {
		gen = NewClientID
	}

	id, ok, err := store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read client id: %w", err)
	}
	if ok && !blank(id) {
		return id, nil
	}

	fresh := strings.TrimSpace(gen())
	if fresh == "" {
		return "", ErrEmptyClientID
	}
	current, err := store.SetIfAbsent(ctx, fresh)
	if err != nil {
		return "", fmt.Errorf("write client id: %w", err)
	}
	if blank(current) {
		return "", ErrEmptyClientID
	}
	return current, nil
}

// blank reporta si un id guardado no sirve; los stores lo tratan como ausente.
func blank(id string) bool {
	return strings.TrimSpace(id) == ""
}
