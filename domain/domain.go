package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdlog "log"
	"math/rand"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"
	mwi18n "github.com/gobuffalo/mw-i18n/v2"
	"github.com/gofrs/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// T is the Buffalo i18n translator
var T *mwi18n.Translator

// BuffaloContextType is a custom type used as a value key passed to context.WithValue as per the recommendations
// in the function docs for that function: https://golang.org/pkg/context/#WithValue
type BuffaloContextType string

// BuffaloContext is the key for the call to context.WithValue in tests and background work
const BuffaloContext = BuffaloContextType("BuffaloContext")

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys
const (
	ContextKeyAnalyzer   = "analyzer"
	ContextKeyClaimStore = "claim_store"
	ContextKeyExtras     = "extras"
	ContextKeyIntakeDesk = "intake_desk"

	EventPayloadID        = "id"
	EventPayloadClaim     = "claim"
	EventPayloadStatus    = "status"
	EventPayloadReference = "reference"
)

const (
	DateFormat    = "2006-01-02"
	LocalizedDate = "2 January 2006"

	MaxFileSize = 1024 * 1024 * 10 // 10 Megabytes

	DurationDay  = time.Duration(time.Hour * 24)
	DurationWeek = time.Duration(DurationDay * 7)
)

const (
	PersistenceMemory = "memory"
	PersistenceFile   = "file"
	PersistenceS3     = "s3"
	PersistenceDB     = "db"

	IntakeDummy = "dummy"
	IntakeHTTP  = "http"

	EmailServiceDummy = "dummy"
	EmailServiceSES   = "ses"
)

// Event Kinds
const (
	EventApiClaimSubmitted     = "api:claim:submitted"
	EventApiClaimStatusUpdated = "api:claim:status"
)

// Env Holds the values of environment variables
var Env struct {
	GoEnv         string `default:"development" envconfig:"GO_ENV"`
	AppName       string `default:"Cover Agri" split_words:"true"`
	ServerPort    int    `default:"3000" split_words:"true"`
	UIURL         string `default:"http://missing.ui.url"`
	SessionSecret string `default:"testing" split_words:"true"`

	PersistenceBackend string `default:"memory" split_words:"true"`
	StorageNamespace   string `default:"claim-storage" split_words:"true"`
	StorageDir         string `default:"./data" split_words:"true"`

	AwsRegion          string `default:"us-east-1" split_words:"true"`
	AwsS3Endpoint      string `split_words:"true"`
	AwsS3DisableSSL    bool   `split_words:"true"`
	AwsS3Bucket        string `split_words:"true"`
	AwsAccessKeyID     string `split_words:"true"`
	AwsSecretAccessKey string `split_words:"true"`

	IntakeService               string `default:"dummy" split_words:"true"`
	IntakeURL                   string `default:"http://localhost:3000" envconfig:"INTAKE_URL"`
	SubmissionTimeoutSeconds    int    `default:"30" split_words:"true"`
	SubmissionDelayMilliseconds int    `default:"1500" split_words:"true"`

	AnalysisURL            string `default:"http://localhost:8000" split_words:"true"`
	AnalysisTimeoutSeconds int    `default:"60" split_words:"true"`

	EmailService     string `default:"dummy" split_words:"true"`
	EmailFromAddress string `default:"no_reply@example.com" split_words:"true"`
	ClaimsDeskEmail  string `default:"claims@example.com" split_words:"true"`

	DefaultUserID   string `default:"current-user" split_words:"true"`
	DefaultPolicyID string `default:"GA-123456789" split_words:"true"`

	StatusSyncMinutes int `default:"15" split_words:"true"`
	CheckpointMinutes int `default:"5" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	// a missing .env file is normal outside of local development
	_ = godotenv.Load()

	err := envconfig.Process("", &Env)
	if err != nil {
		stdlog.Fatal(errors.New("error loading env vars: " + err.Error()))
	}
}

// IsProduction returns true if the GO_ENV is production
func IsProduction() bool {
	return Env.GoEnv == EnvProduction
}

// SubmissionTimeout is the time allowed for a remote claim submission
func SubmissionTimeout() time.Duration {
	return time.Duration(Env.SubmissionTimeoutSeconds) * time.Second
}

// EmailFromAddress combines a name with the configured from address for use in an email From header. If name is nil,
// only the App Name will be used.
func EmailFromAddress(name *string) string {
	addr := Env.AppName + " <" + Env.EmailFromAddress + ">"
	if name != nil {
		addr = *name + " via " + addr
	}
	return addr
}

// NewExtra Sets a new key-value pair in the `extras` entry of the context
func NewExtra(c buffalo.Context, key string, e any) {
	extras, _ := c.Value(ContextKeyExtras).(map[string]any)
	if extras == nil {
		extras = map[string]any{}
	}
	extras[key] = e
	c.Set(ContextKeyExtras, extras)
}

// GetBuffaloContext returns the buffalo.Context stored in ctx, or ctx itself if it is a buffalo.Context.
// The second return value is false if neither is available.
func GetBuffaloContext(ctx context.Context) (buffalo.Context, bool) {
	if bc, ok := ctx.Value(BuffaloContext).(buffalo.Context); ok {
		return bc, true
	}
	bc, ok := ctx.(buffalo.Context)
	return bc, ok
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it
// as a uuid.UUID. Errors are ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		stdlog.Printf("error creating new uuid ... %v", err)
	}
	return id
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

// RandomInsecureIntInRange is insecure because it only uses the math.rand package
// and not the crypto/rand package
func RandomInsecureIntInRange(min, max int) int {
	if min >= max {
		panic("invalid parameters to RandomInsecureIntInRange: max of range must be greater than min.")
	}
	return rand.Intn(max-min+1) + min // #nosec G404
}

// TimeBetween describes the distance between two times in whole minutes, hours or days
func TimeBetween(t1, t2 time.Time) string {
	t1 = t1.Truncate(time.Minute)
	t2 = t2.Truncate(time.Minute)

	if t1 == t2 {
		return "just now"
	}

	var diff time.Duration
	if t1.Before(t2) {
		diff = t2.Sub(t1)
	} else {
		diff = t1.Sub(t2)
	}

	var unit string
	var n int

	if diff < time.Hour {
		n = int(diff / time.Minute)
		unit = "minute"
	} else if diff < DurationDay {
		n = int(diff / time.Hour)
		unit = "hour"
	} else {
		n = int(diff / DurationDay)
		unit = "day"
	}

	if n > 1 {
		unit += "s"
	}

	return fmt.Sprintf("%d %s ago", n, unit)
}
