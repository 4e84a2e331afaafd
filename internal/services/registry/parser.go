package registry

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/dartview/internal/models"
)

// corpEntry mirrors one <list> element of corp.xml
type corpEntry struct {
	CorpCode    string `xml:"corp_code"`
	CorpName    string `xml:"corp_name"`
	CorpEngName string `xml:"corp_eng_name"`
	StockCode   string `xml:"stock_code"`
	ModifyDate  string `xml:"modify_date"`
}

func (e corpEntry) company() *models.Company {
	return &models.Company{
		CorpCode:    strings.TrimSpace(e.CorpCode),
		CorpName:    strings.TrimSpace(e.CorpName),
		CorpEngName: strings.TrimSpace(e.CorpEngName),
		StockCode:   strings.TrimSpace(e.StockCode),
		ModifyDate:  strings.TrimSpace(e.ModifyDate),
	}
}

// Parse streams corp.xml and returns one company per <list> element, in document order.
// Entries without a corp code are skipped.
func Parse(r io.Reader) ([]*models.Company, error) {
	decoder := xml.NewDecoder(r)
	companies := []*models.Company{}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corp registry: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "list" {
			continue
		}

		var entry corpEntry
		if err := decoder.DecodeElement(&entry, &start); err != nil {
			return nil, fmt.Errorf("failed to decode corp registry entry %d: %w", len(companies)+1, err)
		}

		company := entry.company()
		if company.CorpCode == "" {
			continue
		}
		companies = append(companies, company)
	}

	return companies, nil
}

// ParseFile parses the corp registry at path
func ParseFile(path string) ([]*models.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corp registry: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
