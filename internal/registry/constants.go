package registry

import "time"

// Cache defaults used when the configured values are not positive
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

// CacheSchemaVersion is bumped when the cached entry layout changes so old entries are ignored
const CacheSchemaVersion = "1.0"

// Log messages
const (
	LogMsgParticipantRegistered = "Participant registered"
	LogMsgTeamAssigned          = "Participant assigned to team"
	LogMsgTeamOverridden        = "Participant team overridden"
	LogMsgTeamCreated           = "Team created"
	LogMsgImportRowFailed       = "Import row failed"
	LogMsgImportFinished        = "Participant import finished"

	LogErrFailedToRegister  = "Failed to register participant"
	LogErrFailedToAssign    = "Failed to assign team"
	LogErrFailedToResolve   = "Failed to resolve participant"
	LogErrFailedCreateTeam  = "Failed to create team"
	LogErrFailedToListTeams = "Failed to list teams"
)
