package tui

import (
	"github.com/MKhiriev/sky-shelf/models"
)

type loginResultMsg struct {
	session models.Session
	err     error
}

// stateMsg carries one orchestrator state change.
type stateMsg struct {
	state models.QueryState
}

type subscriptionClosedMsg struct{}

type fetchDoneMsg struct {
	collection models.Collection
	err        error
}

// clearedMsg reports a cache clear; an empty collection means all of them.
type clearedMsg struct {
	collection models.Collection
	err        error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
