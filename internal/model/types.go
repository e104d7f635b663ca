package model

import "time"

// SubscriptionTier is the plan a user is on.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// Valid reports whether t is a known tier.
func (t SubscriptionTier) Valid() bool {
	return t == TierFree || t == TierPremium
}

// LookupOutcome tells callers of a find-or-create lookup which branch was taken.
type LookupOutcome string

const (
	OutcomeFound   LookupOutcome = "found"
	OutcomeCreated LookupOutcome = "created"
)

// User represents a profile keyed by UserID.
type User struct {
	UserID             string           `json:"userId"`
	FarcasterID        string           `json:"farcasterId,omitempty"`
	CurrentLocation    string           `json:"currentLocation"`
	SavedStates        []string         `json:"savedStates"`
	SubscriptionStatus SubscriptionTier `json:"subscriptionStatus"`
	TrustedContacts    []TrustedContact `json:"trustedContacts"`
	Version            int64            `json:"version"`
	CreationTime       time.Time        `json:"creationTime"`
	UpdateTime         time.Time        `json:"updateTime"`
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	FarcasterID        *string           `json:"farcasterId,omitempty"`
	CurrentLocation    *string           `json:"currentLocation,omitempty"`
	SavedStates        *[]string         `json:"savedStates,omitempty"`
	SubscriptionStatus *SubscriptionTier `json:"subscriptionStatus,omitempty"`
	TrustedContacts    *[]TrustedContact `json:"trustedContacts,omitempty"`

	// ExpectedVersion, when set, must match the stored version or the update is rejected.
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// TrustedContact is a third party eligible to receive alerts. IDs are unique
// within the owning user's list only.
type TrustedContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// NewContact is the input for adding a trusted contact.
type NewContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// ContactList is the stored form of a user's trusted contacts.
type ContactList struct {
	UserID   string           `json:"userId"`
	Contacts []TrustedContact `json:"contacts"`
	Version  int64            `json:"version"`
}

// Encounter is a record of a documented interaction.
type Encounter struct {
	EncounterID  string    `json:"encounterId"`
	UserID       string    `json:"userId"`
	Timestamp    time.Time `json:"timestamp"`
	Location     string    `json:"location"`
	ScriptUsed   string    `json:"scriptUsed,omitempty"`
	RecordingURL string    `json:"recordingUrl,omitempty"`
	Notes        string    `json:"notes"`
	SharedWith   []string  `json:"sharedWith"`
	Version      int64     `json:"version"`
}

// NewEncounter is the input for creating an encounter.
type NewEncounter struct {
	UserID       string `json:"userId"`
	Location     string `json:"location,omitempty"`
	ScriptUsed   string `json:"scriptUsed,omitempty"`
	RecordingURL string `json:"recordingUrl,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// EncounterPatch carries the mutable fields of an encounter. Owner and ID are not patchable.
type EncounterPatch struct {
	Location     *string   `json:"location,omitempty"`
	ScriptUsed   *string   `json:"scriptUsed,omitempty"`
	RecordingURL *string   `json:"recordingUrl,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	SharedWith   *[]string `json:"sharedWith,omitempty"`

	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// DeliveryStatus is the per-contact outcome of an alert.
type DeliveryStatus string

const DeliverySent DeliveryStatus = "sent"

// AlertRequest is the input to an alert dispatch.
type AlertRequest struct {
	UserID   string           `json:"userId"`
	Location string           `json:"location,omitempty"`
	Message  string           `json:"message,omitempty"`
	Contacts []TrustedContact `json:"contacts"`
}

// AlertDelivery is the status of one contact's notification.
type AlertDelivery struct {
	ContactID    string         `json:"contactId"`
	ContactName  string         `json:"contactName"`
	ContactPhone string         `json:"contactPhone"`
	Status       DeliveryStatus `json:"status"`
	Timestamp    time.Time      `json:"timestamp"`
}

// AlertDispatchResult is computed per request and never stored.
type AlertDispatchResult struct {
	AlertID string          `json:"alertId"`
	Message string          `json:"message"`
	SentTo  int             `json:"sentTo"`
	Results []AlertDelivery `json:"results"`
}

// FrameButton is one button of a Farcaster frame response.
type FrameButton struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
	Target string `json:"target,omitempty"`
}

// FrameResponse is the next frame view returned for a button press.
type FrameResponse struct {
	Image   string        `json:"image"`
	Buttons []FrameButton `json:"buttons"`
}
