package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
	CategoryConflict     = ErrorCategory("Conflict")
	CategoryRemote       = ErrorCategory("Remote") // a remote collaborator failed or timed out
)

const (
	// General

	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorResourceNotFound      = ErrorKey("ErrorResourceNotFound")
	ErrorRouteNotFound         = ErrorKey("ErrorRouteNotFound")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Persistence
	ErrorPersistenceLoad = ErrorKey("ErrorPersistenceLoad")
	ErrorPersistenceSave = ErrorKey("ErrorPersistenceSave")

	// File
	ErrorReceivingFile     = ErrorKey("ErrorReceivingFile")
	ErrorStoreFileTooLarge = ErrorKey("ErrorStoreFileTooLarge")
	ErrorUnableToReadFile  = ErrorKey("ErrorUnableToReadFile")

	// Claim
	ErrorClaimFromContext          = ErrorKey("ErrorClaimFromContext")
	ErrorClaimNotFound             = ErrorKey("ErrorClaimNotFound")
	ErrorClaimNotSubmittable       = ErrorKey("ErrorClaimNotSubmittable")
	ErrorClaimRemoteSubmission     = ErrorKey("ErrorClaimRemoteSubmission")
	ErrorClaimStatus               = ErrorKey("ErrorClaimStatus")
	ErrorClaimSubmissionInProgress = ErrorKey("ErrorClaimSubmissionInProgress")
	ErrorDraftNotFound             = ErrorKey("ErrorDraftNotFound")

	// Collaborators
	ErrorAnalysisRequest  = ErrorKey("ErrorAnalysisRequest")
	ErrorCollaboratorData = ErrorKey("ErrorCollaboratorData")

	// Policy
	ErrorPolicyNotFound = ErrorKey("ErrorPolicyNotFound")

	// Intake
	ErrorIntakeClaimNotFound = ErrorKey("ErrorIntakeClaimNotFound")
	ErrorIntakeDeskMissing   = ErrorKey("ErrorIntakeDeskMissing")
)
