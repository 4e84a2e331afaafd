package models

// Statement type (fs_div) values
const (
	StatementConsolidated = "CFS"
	StatementSeparate     = "OFS"
)

// Section (sj_div) values
const (
	SectionBalanceSheet    = "BS"
	SectionIncomeStatement = "IS"
)

// Report codes accepted by the disclosure API
const (
	ReportAnnual     = "11011"
	ReportSemiannual = "11012"
	ReportQ1         = "11013"
	ReportQ3         = "11014"
)

// IsReportCode reports whether code is one of the four periodic report codes
func IsReportCode(code string) bool {
	switch code {
	case ReportAnnual, ReportSemiannual, ReportQ1, ReportQ3:
		return true
	}
	return false
}

// Key account names used by the insight and chart builders
const (
	AccountRevenue          = "매출액"
	AccountOperatingProfit  = "영업이익"
	AccountNetIncome        = "당기순이익"
	AccountTotalAssets      = "자산총계"
	AccountTotalLiabilities = "부채총계"
	AccountTotalEquity      = "자본총계"
)

// LineItem is one accounting fact returned by fnlttSinglAcnt.json.
// Amounts are strings in won, possibly with thousands separators or "-".
type LineItem struct {
	ReceiptNo            string `json:"rcept_no"`
	BusinessYear         string `json:"bsns_year"`
	CorpCode             string `json:"corp_code"`
	StockCode            string `json:"stock_code"`
	ReportCode           string `json:"reprt_code"`
	AccountName          string `json:"account_nm"`
	StatementType        string `json:"fs_div"`
	StatementName        string `json:"fs_nm"`
	Section              string `json:"sj_div"`
	SectionName          string `json:"sj_nm"`
	CurrentTermName      string `json:"thstrm_nm"`
	CurrentTermDate      string `json:"thstrm_dt"`
	CurrentAmount        string `json:"thstrm_amount"`
	PreviousTermName     string `json:"frmtrm_nm"`
	PreviousTermDate     string `json:"frmtrm_dt"`
	PreviousAmount       string `json:"frmtrm_amount"`
	BeforePreviousName   string `json:"bfefrmtrm_nm"`
	BeforePreviousDate   string `json:"bfefrmtrm_dt"`
	BeforePreviousAmount string `json:"bfefrmtrm_amount"`
	Order                string `json:"ord"`
	Currency             string `json:"currency"`
}

// Amounts holds the three reported periods in hundred-million won
type Amounts struct {
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	BeforePrevious float64 `json:"before_previous"`
}

// StatementMetadata identifies the filing a statement came from
type StatementMetadata struct {
	CorpCode           string `json:"corp_code"`
	StockCode          string `json:"stock_code"`
	BusinessYear       string `json:"bsns_year"`
	ReportCode         string `json:"reprt_code"`
	CurrentTermName    string `json:"thstrm_nm"`
	PreviousTermName   string `json:"frmtrm_nm"`
	BeforePreviousName string `json:"bfefrmtrm_nm"`
}

// Statement is the reshaped, consolidated view of one filing
type Statement struct {
	BalanceSheet    map[string]Amounts `json:"balance_sheet"`
	IncomeStatement map[string]Amounts `json:"income_statement"`
	Metadata        *StatementMetadata `json:"metadata"`
}

// NewStatement returns an empty statement with initialised sections
func NewStatement() *Statement {
	return &Statement{
		BalanceSheet:    map[string]Amounts{},
		IncomeStatement: map[string]Amounts{},
	}
}

// Current returns the current-period amount of an account in the given section, 0 when absent
func (s *Statement) Current(section, account string) float64 {
	if s == nil {
		return 0
	}
	switch section {
	case SectionBalanceSheet:
		return s.BalanceSheet[account].Current
	case SectionIncomeStatement:
		return s.IncomeStatement[account].Current
	}
	return 0
}

// FetchResult is the uniform outcome of a single disclosure API call
type FetchResult struct {
	Success   bool       `json:"success"`
	Items     []LineItem `json:"data"`
	Message   string     `json:"message"`
	ErrorCode string     `json:"error_code,omitempty"`
}
