package flow

import (
	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/db"
)

// Trigger identifies how a pairing flow was started. The trigger decides
// which steps the flow can skip (identity or credential already known) and
// how the ledger treats duplicates.
type Trigger string

const (
	// TriggerUser is an explicit user-started flow: discovery, then
	// choice or manual entry, then the link handshake.
	TriggerUser Trigger = "user"

	// TriggerReauth re-proves the credential for an already-registered
	// bridge. Host, port and identity are seeded from the record.
	TriggerReauth Trigger = "reauth"

	// TriggerAnnounce is a passively received network announcement
	// carrying identity, host and port.
	TriggerAnnounce Trigger = "announce"

	// TriggerAddon is a host-platform announcement that already carries
	// a credential; only a confirmation step remains.
	TriggerAddon Trigger = "addon"
)

// Announced reports whether the trigger is announcement-class, i.e. the
// flow was not started by explicit user action.
func (t Trigger) Announced() bool {
	return t == TriggerAnnounce || t == TriggerAddon
}

// Source maps the trigger to the record-origin classification stored with
// a bridge registered through it.
func (t Trigger) Source() string {
	switch t {
	case TriggerAnnounce:
		return db.SourceAnnounce
	case TriggerAddon:
		return db.SourceAddon
	default:
		return db.SourceUser
	}
}

// Seed is the partial state a trigger supplies when starting a flow.
// Fields the trigger cannot know are left zero and collected by later steps.
type Seed struct {
	Trigger    Trigger
	Host       string
	Port       int
	RawID      string
	APIKey     string
	AddonLabel string
}

// Session is the in-progress state of one pairing flow instance. It is
// created at trigger entry, filled in step by step, and dropped at the
// terminal transition. BridgeID is canonical (normalized) whenever set.
type Session struct {
	ID         string
	Trigger    Trigger
	Host       string
	Port       int
	BridgeID   string
	APIKey     string
	AddonLabel string
	Candidates []bridge.Candidate
}

// Step identifiers rendered to the caller.
const (
	StepChoose       = "choose"
	StepManualInput  = "manual_input"
	StepLink         = "link"
	StepAddonConfirm = "addon_confirm"
)

// ManualChoice is the pseudo-candidate offered on the choose step.
const ManualChoice = "manual"

// DefaultPort pre-fills the manual-input form.
const DefaultPort = 80

// Reason codes surfaced to the caller.
const (
	ReasonLinkingNotPossible = "linking_not_possible"
	ReasonNoKey              = "no_key"
	ReasonNoBridges          = "no_bridges"
	ReasonAlreadyConfigured  = "already_configured"
)

// Kind classifies a step result.
type Kind string

const (
	// KindForm asks the caller to collect input for Step and submit it.
	KindForm Kind = "form"
	// KindCreated means a new bridge record was registered.
	KindCreated Kind = "created"
	// KindAbort means the flow ended without creating a record. An
	// already_configured abort is success-equivalent: the existing
	// record reflects the latest connection parameters.
	KindAbort Kind = "abort"
)

// Result is what every step returns: a prompt to render, or a terminal
// outcome.
type Result struct {
	Kind         Kind              `json:"kind"`
	Step         string            `json:"step,omitempty"`
	Reason       string            `json:"reason,omitempty"`
	Choices      []string          `json:"choices,omitempty"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
	BridgeID     string            `json:"bridge_id,omitempty"`
}

// Terminal reports whether the flow is finished.
func (r Result) Terminal() bool {
	return r.Kind != KindForm
}

// Input carries one step's submitted values.
type Input struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}
