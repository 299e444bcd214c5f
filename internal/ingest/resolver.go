package ingest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"workload-import-api/internal/models"
	"workload-import-api/internal/store"
)

// UserAttrs are the optional directory attributes a sheet may carry for a
// person alongside their display name.
type UserAttrs struct {
	NIP      string
	Email    string
	Golongan string
	Jabatan  string
	Role     string
}

// UserResolver performs idempotent lookup-or-create of users by display
// name. Rows are resolved strictly in order through this single path, which
// is what keeps two rows carrying the same new name from racing each other
// into duplicate users.
type UserResolver struct {
	store store.Store
	log   *logrus.Logger
}

func NewUserResolver(st store.Store, log *logrus.Logger) *UserResolver {
	return &UserResolver{store: st, log: log}
}

// ResolveOrCreate returns the id of the user with the given display name,
// creating the user when none exists. A blank name yields nil with no side
// effect. Lookup or creation failures are logged and yield nil, never an
// error; the caller's record simply carries an unresolved reference.
func (r *UserResolver) ResolveOrCreate(displayName string, attrs *UserAttrs) *int64 {
	name := normalizeName(displayName)
	if name == "" {
		return nil
	}

	existing, err := r.store.FindUserByName(name)
	if err != nil {
		r.log.WithError(err).WithField("name", name).Warn("user lookup failed")
		return nil
	}
	if existing != nil {
		// Fire-and-forget freshness touch; never propagated.
		if err := r.store.TouchUser(existing.ID); err != nil {
			r.log.WithError(err).WithField("user_id", existing.ID).Warn("touch user failed")
		}
		return &existing.ID
	}

	user := &models.User{
		FullName: name,
		Username: strings.ReplaceAll(strings.ToLower(name), " ", "."),
		NIP:      fallbackNIP(attrs),
		Role:     "user",
		IsActive: true,
	}
	if attrs != nil {
		if attrs.Golongan != "" {
			user.Golongan = &attrs.Golongan
		}
		if attrs.Jabatan != "" {
			user.Jabatan = &attrs.Jabatan
		}
		// Email stays nil when absent. A synthesized placeholder would
		// collide with the unique constraint on repeated runs.
		if attrs.Email != "" {
			user.Email = &attrs.Email
		}
		if attrs.Role != "" {
			user.Role = attrs.Role
		}
	}

	id, err := r.store.InsertUser(user)
	if err != nil {
		r.log.WithError(err).WithField("name", name).Warn("user creation failed")
		return nil
	}
	return &id
}

// normalizeName collapses internal whitespace so "Jane  Doe" and "Jane Doe"
// resolve to the same user.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// fallbackNIP uses the sheet's NIP when present, otherwise synthesizes a
// placeholder token. The token has no collision check.
func fallbackNIP(attrs *UserAttrs) string {
	if attrs != nil && strings.TrimSpace(attrs.NIP) != "" {
		return strings.TrimSpace(attrs.NIP)
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "AUTO-" + strings.ToUpper(token[:10])
}
