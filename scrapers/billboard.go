package scrapers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gocolly/colly"
	"go.uber.org/zap"
)

type Song struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

const (
	rowSelector    = "ul.o-chart-results-list-row"
	rankSelector   = "li.o-chart-results-list__item span.c-label.a-font-primary-bold-l"
	titleSelector  = "li.o-chart-results-list__item h3.c-title"
	artistSelector = "li.o-chart-results-list__item span.c-label:not(.a-font-primary-bold-l):not(.u-width-45):not(.u-width-40)"
)

// ScrapeChart scrapes a Billboard-layout chart page. Rows without a title
// are skipped; rows with an unreadable rank take their position instead.
func ScrapeChart(url string, logger *zap.Logger) ([]Song, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := colly.NewCollector()
	var (
		songs     []Song
		scrapeErr error
	)

	c.OnHTML(rowSelector, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(titleSelector))
		if title == "" {
			return
		}
		rank, err := strconv.Atoi(firstLine(e.ChildText(rankSelector)))
		if err != nil {
			rank = len(songs) + 1
			logger.Debug("Unreadable chart rank, using position", zap.String("title", title), zap.Int("rank", rank))
		}
		songs = append(songs, Song{
			Rank:   rank,
			Title:  title,
			Artist: firstLine(e.ChildText(artistSelector)),
		})
	})

	c.OnRequest(func(r *colly.Request) {
		logger.Info("Visiting chart", zap.String("url", r.URL.String()))
	})

	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("scrape %s: status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("visit %s: %w", url, err)
	}
	if scrapeErr != nil {
		return nil, scrapeErr
	}
	return songs, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
