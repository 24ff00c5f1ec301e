package ingest

// Свойства основной базы сделок
const (
	PropSymbol       = "Symbol"
	PropTicket       = "Ticket"
	PropAccountLabel = "Account Label"
	PropMagicNumber  = "Magic Number"
	PropDirection    = "Direction"
	PropLots         = "Lots"
	PropPnL          = "PnL"
	PropOutcome      = "Outcome"
	PropBalance      = "Balance"
	PropClosedAt     = "Closed At"
	PropOpenedAt     = "Opened At"
	PropComment      = "Comment"
	PropAccount      = "Account"
	PropStrategy     = "Strategy"
)

// Свойства баз счетов и стратегий
const (
	PropName = "Name"
)

// Свойства базы просадок
const (
	PropDDTimestamp       = "Timestamp"
	PropDDAccount         = "Account"
	PropDDBalance         = "Balance"
	PropDDEquity          = "Equity"
	PropDDPeakBalance     = "Peak Balance"
	PropDDAccountDD       = "Account DD"
	PropDDAccountDDPct    = "Account DD %"
	PropDDStrategyDD      = "Strategy DD"
	PropDDStrategyMaxDD   = "Strategy Max DD"
	PropDDStrategyPeak    = "Strategy Peak"
	PropDDStrategyMagicNo = "Magic Number"
)

const (
	lookupPageSize = 1
	scanPageSize   = 100
)
