package opendart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	corpCodePath = "/corpCode.xml"

	// maxCorpCodeArchive bounds the registry download; the real archive is a few MB.
	maxCorpCodeArchive = 64 << 20
)

// statusBody is the XML body OpenDART sends instead of the archive when a request is rejected
type statusBody struct {
	Status  string `xml:"status"`
	Message string `xml:"message"`
}

// CorpCodes downloads the corp code registry archive and returns the XML it contains
func (c *Client) CorpCodes(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, corpCodePath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCorpCodeArchive))
	if err != nil {
		return nil, fmt.Errorf("failed to read corp code archive: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		var body statusBody
		if xml.Unmarshal(data, &body) == nil && body.Status != "" {
			return nil, &APIError{Status: body.Status, Message: StatusMessage(body.Status)}
		}
		return nil, fmt.Errorf("corp code response is not a zip archive: %w", err)
	}

	for _, file := range archive.File {
		if !strings.EqualFold(file.Name, "CORPCODE.xml") {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		defer rc.Close()

		xmlData, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}

		if c.logger != nil {
			c.logger.Info().
				Int("archive_bytes", len(data)).
				Int("xml_bytes", len(xmlData)).
				Msg("Corp code registry downloaded")
		}
		return xmlData, nil
	}

	return nil, fmt.Errorf("corp code archive has no CORPCODE.xml entry")
}
