package services

import (
	"time"

	"github.com/google/uuid"
)

// ID prefixes keep identifiers readable in logs and URLs.
const (
	prefixUser      = "user"
	prefixEncounter = "encounter"
	prefixContact   = "contact"
	prefixAlert     = "alert"
)

func newID(prefix string) string { return prefix + "-" + uuid.NewString() }

func utcNow() time.Time { return time.Now().UTC() }
