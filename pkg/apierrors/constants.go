package apierrors

const (
	MsgUnauthorized          = "unauthorized"
	MsgForbidden             = "forbidden"
	MsgInvalidID             = "invalidID"
	MsgInvalidSessionPayload = "invalidSessionPayload"
	MsgInvalidReviewPayload  = "invalidReviewPayload"
	MsgInvalidSubtaskPayload = "invalidSubtaskPayload"
	MsgTaskNotFound          = "taskNotFound"
	MsgSubtaskNotFound       = "subtaskNotFound"
	MsgEntryNotFound         = "entryNotFound"
	MsgDuplicateSession      = "duplicateSession"
	MsgConflictingSession    = "conflictingSession"
	MsgNoTaskSession         = "noTaskSession"
	MsgSessionAlreadyStopped = "sessionAlreadyStopped"
	MsgFailStartSession      = "failStartSession"
	MsgFailStopSession       = "failStopSession"
	MsgFailListSessions      = "failListSessions"
	MsgFailGetHours          = "failGetHours"
	MsgFailSubmitReview      = "failSubmitReview"
	MsgFailListTasks         = "failListTasks"
	MsgFailListSubtasks      = "failListSubtasks"
	MsgFailUpdateSubtask     = "failUpdateSubtask"
)
