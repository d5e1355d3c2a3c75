package archivist

// ConfirmationStatus is the ledger confirmation state of a record.
type ConfirmationStatus string

const (
	StatusUnknown   ConfirmationStatus = "CONFIRMATION_STATUS_UNSPECIFIED"
	StatusPending   ConfirmationStatus = "PENDING"
	StatusConfirmed ConfirmationStatus = "CONFIRMED"
	StatusFailed    ConfirmationStatus = "FAILED"
)

// Terminal reports whether no further transition is expected.
func (s ConfirmationStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// Attributes are the free-form key/values attached to a record. Keys with
// the "arc_" prefix are interpreted by the server; the client passes them
// through untouched.
type Attributes map[string]any

// Asset is a record under assets/.
type Asset map[string]any

func (a Asset) Identity() string                       { return identityOf(a) }
func (a Asset) ConfirmationStatus() ConfirmationStatus { return statusOf(a) }

// Attributes returns the asset's attributes, or nil.
func (a Asset) Attributes() Attributes {
	return attributesOf(a, "attributes")
}

// Name returns the arc_display_name attribute when present.
func (a Asset) Name() string {
	name, _ := a.Attributes()["arc_display_name"].(string)
	return name
}

// Subject is a record under subjects/.
type Subject map[string]any

func (s Subject) Identity() string                       { return identityOf(s) }
func (s Subject) ConfirmationStatus() ConfirmationStatus { return statusOf(s) }

// Name returns the subject's display_name.
func (s Subject) Name() string {
	name, _ := s["display_name"].(string)
	return name
}

// Event is a record under assets/<id>/events/.
type Event map[string]any

func (e Event) Identity() string                       { return identityOf(e) }
func (e Event) ConfirmationStatus() ConfirmationStatus { return statusOf(e) }

// AssetIdentity returns the identity of the asset the event belongs to.
func (e Event) AssetIdentity() string {
	id, _ := e["asset_identity"].(string)
	return id
}

// EventAttributes returns the event's own attributes, or nil.
func (e Event) EventAttributes() Attributes {
	return attributesOf(e, "event_attributes")
}

// CompliancePolicy is a record under compliance_policies/.
type CompliancePolicy map[string]any

func (p CompliancePolicy) Identity() string                       { return identityOf(p) }
func (p CompliancePolicy) ConfirmationStatus() ConfirmationStatus { return statusOf(p) }

// Name returns the policy's display_name.
func (p CompliancePolicy) Name() string {
	name, _ := p["display_name"].(string)
	return name
}

func identityOf[T ~map[string]any](record T) string {
	id, _ := record["identity"].(string)
	return id
}

func statusOf[T ~map[string]any](record T) ConfirmationStatus {
	status, ok := record["confirmation_status"].(string)
	if !ok || status == "" {
		return StatusUnknown
	}
	return ConfirmationStatus(status)
}

func attributesOf[T ~map[string]any](record T, key string) Attributes {
	attrs, _ := record[key].(map[string]any)
	return attrs
}
