package indexnow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	valid "github.com/asaskevich/govalidator"
)

var (
	ErrNoPagesDefined = errors.New("no pages defined")
	ErrInvalidPageURL = errors.New("not an absolute http(s) URL")
)

var sitePagePaths = []string{
	"/",
	"/fr/",
	"/es/",
	"/de/",
	"/legal-notice",
	"/privacy-policy",
	"/fr/mentions-legales",
	"/fr/politique-de-confidentialite",
	"/es/mentions-legales",
	"/es/politica-de-confidencialidad",
	"/de/mentions-legales",
	"/de/datenschutzerklaerung",
}

type PagesFile struct {
	Pages []string `json:"pages"`
}

// DefaultPages returns the landing and legal pages of the site, in ping order.
func DefaultPages(siteURL string) []string {
	base := strings.TrimRight(siteURL, "/")
	pages := make([]string, 0, len(sitePagePaths))
	for _, path := range sitePagePaths {
		pages = append(pages, base+path)
	}

	return pages
}

func LoadPagesFromFile(path string) ([]string, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s file: %w", path, err)
	}

	var pagesFile PagesFile
	err = json.Unmarshal(file, &pagesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal %s file: %w", path, err)
	}

	if len(pagesFile.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPagesDefined)
	}

	for _, page := range pagesFile.Pages {
		if !IsPageURL(page) {
			return nil, fmt.Errorf("%s: %q: %w", path, page, ErrInvalidPageURL)
		}
	}

	return pagesFile.Pages, nil
}

// IsPageURL reports whether s is an absolute http or https URL.
func IsPageURL(s string) bool {
	if !valid.IsRequestURL(s) {
		return false
	}

	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
