package participant

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/miyamoto-hai-lab/participants-id/lib/idgen"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
)

var Logger = logger.GetLogger("participant")

// timestampLayout renders ISO-8601 with microsecond precision; for UTC times
// the offset renders as the literal "Z" required by the key layout contract.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

var (
	metricGenerateAttempts = metrics.NewCounter("participants_id_generate_attempts_total")
	metricGenerateRejected = metrics.NewCounter("participants_id_generate_rejected_total")
	metricGenerated        = metrics.NewCounter("participants_id_generated_total")
	metricDeleted          = metrics.NewCounter("participants_id_deleted_total")
)

type participantImpl struct {
	storage   storage.IStorage
	appName   string
	prefix    string
	validator IValidator
	generator idgen.IGenerator
	now       func() time.Time
}

// New creates a manager for the given backing store and application name.
// opts may be nil, in which case DefaultOptions apply. The identifier
// generator is resolved here, once; an unresolvable generator configuration
// is a fatal construction error, never deferred to first use.
func New(st storage.IStorage, appName string, opts *Options) (IParticipant, error) {
	if st == nil {
		return nil, storage.NewError(storage.RetCInvalidOperation, "participant manager requires a backing store")
	}
	if appName == "" {
		return nil, storage.NewError(storage.RetCInvalidOperation, "participant manager requires an application name")
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	gen := opts.Generator
	if gen == nil {
		var err error
		gen, err = idgen.Resolve(opts.Schemes...)
		if err != nil {
			return nil, err
		}
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	return &participantImpl{
		storage:   st,
		appName:   appName,
		prefix:    prefix,
		validator: opts.Validator,
		generator: gen,
		now:       now,
	}, nil
}

// --------------------------------------------------------------------------
// Identifier lifecycle (docu see interface.go)
// --------------------------------------------------------------------------

func (p *participantImpl) BrowserID() (string, error) {
	raw, loaded, err := p.storage.Get(BrowserIDKey(p.prefix))
	if err != nil {
		return "", err
	}

	if loaded && len(raw) > 0 {
		id := string(raw)
		Logger.Debugf("Browser ID found: %s", id)
		return id, nil
	}

	Logger.Infof("Browser ID not found, generating new browser ID...")
	return p.generate()
}

func (p *participantImpl) Regenerate() (string, error) {
	return p.generate()
}

// generate produces candidates until the validator accepts one or the retry
// bound is exhausted, then persists the accepted candidate and performs the
// timestamp bookkeeping. Rejected candidates are never persisted.
func (p *participantImpl) generate() (string, error) {
	Logger.Infof("Generating new browser ID...")

	for attempt := 0; attempt < MaxRetryValidation; attempt++ {
		metricGenerateAttempts.Inc()

		newID, err := p.generator.NewID()
		if err != nil {
			return "", err
		}

		if p.validator != nil {
			ok, err := p.validator.Validate(newID)
			if err != nil {
				return "", fmt.Errorf("participant: identifier validation failed: %w", err)
			}
			if !ok {
				metricGenerateRejected.Inc()
				Logger.Debugf("Browser ID candidate rejected (attempt %d/%d)", attempt+1, MaxRetryValidation)
				continue
			}
		}

		setErr := p.storage.Set(BrowserIDKey(p.prefix), []byte(newID))

		// Timestamp bookkeeping happens regardless of the identifier write
		// outcome: created_at exactly once per prefix, updated_at on every
		// later generation.
		p.recordTimestamps()

		if setErr != nil {
			Logger.Errorf("Failed to save browser ID to storage: %v", setErr)
			return "", fmt.Errorf("%w: %v", ErrStorageRejected, setErr)
		}

		metricGenerated.Inc()
		Logger.Infof("Browser ID generated: %s", newID)
		return newID, nil
	}

	Logger.Errorf("Failed to generate valid browser ID after %d retries", MaxRetryValidation)
	return "", ErrValidationExhausted
}

// recordTimestamps writes created_at on the first successful generation for
// this prefix and updated_at on every one after that. Both writes are best
// effort; a failure here is logged but does not change the generation result.
func (p *participantImpl) recordTimestamps() {
	ts := p.now().UTC().Format(timestampLayout)

	hasCreated, err := p.storage.Has(CreatedAtKey(p.prefix))
	if err != nil {
		Logger.Errorf("Failed to check creation timestamp: %v", err)
		return
	}

	if hasCreated {
		if err := p.storage.Set(UpdatedAtKey(p.prefix), []byte(ts)); err != nil {
			Logger.Errorf("Failed to write update timestamp: %v", err)
			return
		}
		Logger.Debugf("updated_at written: %s", ts)
	} else {
		if err := p.storage.Set(CreatedAtKey(p.prefix), []byte(ts)); err != nil {
			Logger.Errorf("Failed to write creation timestamp: %v", err)
			return
		}
		Logger.Debugf("created_at written: %s", ts)
	}
}

func (p *participantImpl) Exists() (bool, error) {
	return p.storage.Has(BrowserIDKey(p.prefix))
}

func (p *participantImpl) Delete() (bool, error) {
	if err := p.storage.Remove(BrowserIDKey(p.prefix)); err != nil {
		Logger.Errorf("Failed to delete browser ID: %v", err)
		return false, err
	}

	// best effort, not rolled back if either removal fails
	if err := p.storage.Remove(CreatedAtKey(p.prefix)); err != nil {
		Logger.Errorf("Failed to delete creation timestamp: %v", err)
	}
	if err := p.storage.Remove(UpdatedAtKey(p.prefix)); err != nil {
		Logger.Errorf("Failed to delete update timestamp: %v", err)
	}

	metricDeleted.Inc()
	Logger.Warningf("Browser ID was deleted! All correlation for prefix %q is now void.", p.prefix)
	return true, nil
}

// --------------------------------------------------------------------------
// Derived read accessors (docu see interface.go)
// --------------------------------------------------------------------------

func (p *participantImpl) Version() (int, bool, error) {
	raw, loaded, err := p.storage.Get(BrowserIDKey(p.prefix))
	if err != nil {
		return 0, false, err
	}
	if !loaded || len(raw) == 0 {
		return 0, false, nil
	}

	version, ok := idgen.Version(string(raw))
	if !ok {
		return 0, false, storage.NewError(storage.RetCInternalError,
			fmt.Sprintf("stored identifier %q is not decodable", raw))
	}
	return version, true, nil
}

func (p *participantImpl) CreatedAt() (string, bool, error) {
	return p.readTimestamp(CreatedAtKey(p.prefix))
}

func (p *participantImpl) UpdatedAt() (string, bool, error) {
	return p.readTimestamp(UpdatedAtKey(p.prefix))
}

func (p *participantImpl) readTimestamp(key string) (string, bool, error) {
	raw, loaded, err := p.storage.Get(key)
	if err != nil {
		return "", false, err
	}
	if !loaded {
		return "", false, nil
	}
	return string(raw), true, nil
}

// --------------------------------------------------------------------------
// Attribute store (docu see interface.go)
// --------------------------------------------------------------------------

func (p *participantImpl) SetAttribute(field string, value any) error {
	raw, err := encodeAttribute(value)
	if err != nil {
		return err
	}
	return p.storage.Set(AttributeKey(p.prefix, p.appName, field), raw)
}

func (p *participantImpl) GetAttribute(field string, def any) (any, error) {
	raw, loaded, err := p.storage.Get(AttributeKey(p.prefix, p.appName, field))
	if err != nil {
		return def, err
	}
	if !loaded {
		Logger.Debugf("Attribute %q does not exist, returning default value", field)
		return def, nil
	}

	value, err := decodeAttribute(raw)
	if err != nil {
		Logger.Warningf("Attribute %q is not decodable, returning default value: %v", field, err)
		return def, nil
	}

	if isFalsy(value) {
		Logger.Debugf("Attribute %q holds a falsy value, returning default value", field)
		return def, nil
	}
	return value, nil
}

func (p *participantImpl) HasAttribute(field string) (bool, error) {
	return p.storage.Has(AttributeKey(p.prefix, p.appName, field))
}

func (p *participantImpl) DeleteAttribute(field string) error {
	Logger.Debugf("Deleting attribute %q", field)
	return p.storage.Remove(AttributeKey(p.prefix, p.appName, field))
}
