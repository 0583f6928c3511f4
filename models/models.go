package models

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/events"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
)

func init() {
	// initialize model validation library
	mValidate = validator.New()

	// register custom validators for custom types
	for tag, vFunc := range fieldValidators {
		if err := mValidate.RegisterValidation(tag, vFunc, false); err != nil {
			stdlog.Fatal(fmt.Errorf("failed to register validation for %s: %s", tag, err))
		}
	}

	// register struct-level validators
	mValidate.RegisterStructValidation(eventLocationStructLevelValidation, EventLocation{})
}

// ClaimStoreFromContext retrieves the claim store from the context
func ClaimStoreFromContext(ctx context.Context) *ClaimStore {
	store, ok := ctx.Value(domain.ContextKeyClaimStore).(*ClaimStore)
	if !ok {
		log.Errorf("no claim store found in context, called from: %s", domain.GetFunctionName(2))
		return nil
	}
	return store
}

func appErrorFromDB(err error, defaultKey api.ErrorKey) error {
	if err == nil {
		return nil
	}

	appErr := api.NewAppError(err, defaultKey, api.CategoryDatabase)

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		appErr.Err = fmt.Errorf("%w Detail: %s", err, pgError.Detail)

		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			appErr.Key = api.ErrorUniqueKeyViolation
		case pgerrcode.UndefinedTable:
			appErr.DebugMsg = "snapshots table is missing, run the migrations"
		}
	}

	return appErr
}

// This can include an event payload, which is a map[string]any
func emitEvent(e events.Event) {
	if err := events.Emit(e); err != nil {
		log.Errorf("error emitting event %s ... %v", e.Kind, err)
	}
}
