package practice

import (
	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/lifecycle"
	"github.com/abhisek/smartest/internal/quizapi"
)

// catalogLoadedMsg is sent when the catalog fetch completes.
type catalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// generateDoneMsg carries a generate response back to the session that
// issued it.
type generateDoneMsg struct {
	Session *lifecycle.Session
	Ticket  lifecycle.GenerateTicket
	Resp    *quizapi.GenerateResponse
	Err     error
}

// checkDoneMsg carries a check response back to the session that issued it.
type checkDoneMsg struct {
	Session *lifecycle.Session
	Ticket  lifecycle.CheckTicket
	Resp    *quizapi.CheckResponse
	Err     error
}
