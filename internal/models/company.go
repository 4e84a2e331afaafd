package models

// Company is one row of the company directory, loaded from the OpenDART corp.xml registry.
// StockCode is empty for unlisted companies.
type Company struct {
	CorpCode    string `json:"corp_code"`
	CorpName    string `json:"corp_name"`
	CorpEngName string `json:"corp_eng_name"`
	StockCode   string `json:"stock_code"`
	ModifyDate  string `json:"modify_date"`
}

// IsListed reports whether the company has an exchange ticker
func (c *Company) IsListed() bool {
	return c.StockCode != ""
}

// DirectoryStats summarises the company directory
type DirectoryStats struct {
	TotalCompanies    int    `json:"total_companies"`
	ListedCompanies   int    `json:"listed_companies"`
	UnlistedCompanies int    `json:"unlisted_companies"`
	LastModified      string `json:"last_modified"`
}
