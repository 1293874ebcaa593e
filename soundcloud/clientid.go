package soundcloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/where"
	"github.com/samber/lo"
)

// ErrClientID is returned when no client id could be found.
var ErrClientID = errors.New("could not find a soundcloud client id")

const (
	clientIDCacheKey = "client_id"
	clientIDLifetime = 24 * time.Hour
)

var clientIDPattern = regexp.MustCompile(`client_id\s*[:=]\s*"([0-9A-Za-z_-]{16,64})"`)

var clientIDCache = newCacher[string, string](where.ClientID(), clientIDLifetime)

// ClientID returns the configured client id, the cached one, or a freshly
// discovered one, in that order.
func (c *Client) ClientID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clientID != "" {
		return c.clientID, nil
	}

	if cached, ok := clientIDCache.Get(clientIDCacheKey).Get(); ok {
		c.clientID, c.discovered = cached, true
		return cached, nil
	}

	id, err := DiscoverClientID(ctx, c.http, c.webBase)
	if err != nil {
		return "", err
	}

	if err := clientIDCache.Set(clientIDCacheKey, id); err != nil {
		log.Warnf("cache client id: %s", err)
	}

	c.clientID, c.discovered = id, true
	return id, nil
}

// forgetClientID drops a discovered id so the next request looks again.
// Configured ids are kept.
func (c *Client) forgetClientID() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.discovered {
		return
	}

	c.clientID, c.discovered = "", false
	if err := clientIDCache.Delete(clientIDCacheKey); err != nil {
		log.Warnf("forget client id: %s", err)
	}
}

// DiscoverClientID scrapes the public web app for the client id embedded
// in its script bundles.
func DiscoverClientID(ctx context.Context, client *http.Client, webBase string) (string, error) {
	base, err := url.Parse(webBase)
	if err != nil {
		return "", err
	}

	page, err := fetch(ctx, client, base.String())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrClientID, err)
	}
	defer page.Close()

	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrClientID, err)
	}

	if id, ok := matchClientID(doc.Find("script:not([src])").Text()); ok {
		return id, nil
	}

	var scripts []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if ref, err := url.Parse(src); err == nil {
			scripts = append(scripts, base.ResolveReference(ref).String())
		}
	})

	// the id lives in one of the last bundles
	for _, script := range lo.Reverse(scripts) {
		body, err := fetch(ctx, client, script)
		if err != nil {
			log.Debugf("client id: %s", err)
			continue
		}

		data, err := io.ReadAll(body)
		body.Close()
		if err != nil {
			continue
		}

		if id, ok := matchClientID(string(data)); ok {
			log.Infof("discovered soundcloud client id in %s", script)
			return id, nil
		}
	}

	return "", ErrClientID
}

func matchClientID(text string) (string, bool) {
	m := clientIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func fetch(ctx context.Context, client *http.Client, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: %s", target, resp.Status)
	}

	return resp.Body, nil
}
