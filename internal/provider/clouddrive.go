// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

// DriveConfig configures the consumer cloud-drive backend. The drive
// exposes a folder-oriented REST API; object keys are virtual paths that
// the backend resolves into folder ids.
type DriveConfig struct {
	BaseURL     string
	ClientID    string
	AccessToken string
	RootFolder  string // drive folder holding all sync data; default "vault-sync"
	Timeout     time.Duration
}

// driveEntry is one file or folder in a drive listing.
type driveEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Folder bool   `json:"folder"`
	Path   string `json:"path,omitempty"`
}

type folderCreateRequest struct {
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
}

// pendingFolder coalesces concurrent creation attempts for the same path
// into a single in-flight request.
type pendingFolder struct {
	done chan struct{}
	id   string
	err  error
}

// driveProvider implements [Provider] against a folder-oriented consumer
// cloud drive. Virtual paths are resolved to folder ids lazily and cached;
// DeleteFolder invalidates every cached id under the deleted subtree.
type driveProvider struct {
	cfg     DriveConfig
	log     *logger.Logger
	client  *resty.Client
	retryer *Retryer
	reauth  ReauthFunc

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	rootID    string
	pathIDs   map[string]string
	inflight  map[string]*pendingFolder
}

// NewDriveProvider constructs the cloud-drive backend. reauth is invoked
// (once per expiry) after a rejected token has been cleared; it may be nil.
func NewDriveProvider(cfg DriveConfig, log *logger.Logger, reauth ReauthFunc) Provider {
	if cfg.RootFolder == "" {
		cfg.RootFolder = "vault-sync"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	p := &driveProvider{
		cfg:      cfg,
		log:      log,
		client:   cli,
		retryer:  NewRetryer(DefaultRetryConfig()),
		reauth:   reauth,
		pathIDs:  make(map[string]string),
		inflight: make(map[string]*pendingFolder),
	}
	p.setToken(cfg.AccessToken)
	return p
}

func (p *driveProvider) Name() string { return "clouddrive" }

func (p *driveProvider) IsConfigured() bool {
	return p.cfg.BaseURL != "" && p.cfg.ClientID != "" && p.currentToken() != ""
}

// SetAccessToken installs a fresh token after re-authentication.
func (p *driveProvider) SetAccessToken(token string) {
	p.setToken(token)
}

func (p *driveProvider) setToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = strings.TrimSpace(token)
	p.expiresAt = utils.TokenExpiry(p.token)
}

func (p *driveProvider) currentToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// checkToken fails fast with ErrAuthExpired when the token is absent or its
// JWT exp claim is in the past, saving a doomed network round-trip.
func (p *driveProvider) checkToken() error {
	p.mu.Lock()
	token := p.token
	expired := !p.expiresAt.IsZero() && time.Now().After(p.expiresAt)
	p.mu.Unlock()

	if token == "" {
		return fmt.Errorf("%w: no access token", ErrAuthExpired)
	}
	if expired {
		p.handleAuthExpired()
		return fmt.Errorf("%w: access token expired", ErrAuthExpired)
	}
	return nil
}

// handleAuthExpired clears the cached token and escalates to the re-auth
// callback. Auth failures are never retried.
func (p *driveProvider) handleAuthExpired() {
	p.mu.Lock()
	hadToken := p.token != ""
	p.token = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()

	if hadToken && p.reauth != nil {
		p.reauth(p.Name())
	}
}

func (p *driveProvider) Initialize(ctx context.Context) error {
	if !p.IsConfigured() {
		return fmt.Errorf("%w: base url, client id and access token are required", ErrConfigIncomplete)
	}

	rootID, err := p.resolveFolder(ctx, "", true)
	if err != nil {
		return fmt.Errorf("resolve root folder: %w", err)
	}

	p.mu.Lock()
	p.rootID = rootID
	p.mu.Unlock()

	p.log.Info().
		Str("func", "driveProvider.Initialize").
		Str("root_folder", p.cfg.RootFolder).
		Msg("cloud drive provider initialized")

	return nil
}

func (p *driveProvider) Upload(ctx context.Context, key string, data []byte, isMetadata bool) error {
	dir, name := path.Split(key)

	folderID, err := p.resolveFolder(ctx, strings.TrimSuffix(dir, "/"), true)
	if err != nil {
		return err
	}

	contentType := "application/octet-stream"
	if isMetadata {
		contentType = "application/json"
	}

	return p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			SetHeader("Content-Type", contentType).
			SetQueryParam("name", name).
			SetBody(data).
			Put("/api/v1/folders/" + folderID + "/files")
		return p.mapDriveResponse("upload "+key, resp, err)
	})
}

func (p *driveProvider) Download(ctx context.Context, key string, _ bool) ([]byte, error) {
	dir, name := path.Split(key)

	folderID, err := p.resolveFolder(ctx, strings.TrimSuffix(dir, "/"), false)
	if err != nil {
		return nil, err
	}

	return p.retryer.DoBytes(ctx, func() ([]byte, error) {
		if err := p.checkToken(); err != nil {
			return nil, err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			Get("/api/v1/folders/" + folderID + "/files/" + name)
		if mapped := p.mapDriveResponse("download "+key, resp, err); mapped != nil {
			return nil, mapped
		}
		return resp.Body(), nil
	})
}

func (p *driveProvider) Delete(ctx context.Context, key string) error {
	dir, name := path.Split(key)

	folderID, err := p.resolveFolder(ctx, strings.TrimSuffix(dir, "/"), false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	return p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			Delete("/api/v1/folders/" + folderID + "/files/" + name)
		mapped := p.mapDriveResponse("delete "+key, resp, err)
		if errors.Is(mapped, ErrNotFound) {
			return nil
		}
		return mapped
	})
}

func (p *driveProvider) List(ctx context.Context, prefix string) ([]string, error) {
	folderPath := strings.TrimSuffix(prefix, "/")

	folderID, err := p.resolveFolder(ctx, folderPath, false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil // absent folder lists as empty
		}
		return nil, err
	}

	var entries []driveEntry
	err = p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			SetQueryParam("recursive", "true").
			SetResult(&entries).
			Get("/api/v1/folders/" + folderID + "/list")
		return p.mapDriveResponse("list "+prefix, resp, err)
	})
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.Folder {
			continue
		}
		rel := e.Path
		if rel == "" {
			rel = e.Name
		}
		if folderPath != "" {
			keys = append(keys, folderPath+"/"+rel)
		} else {
			keys = append(keys, rel)
		}
	}
	return keys, nil
}

func (p *driveProvider) CopyObject(ctx context.Context, src, dst string) error {
	data, err := p.Download(ctx, src, false)
	if err != nil {
		return fmt.Errorf("copy source %q: %w", src, err)
	}
	if err := p.Upload(ctx, dst, data, false); err != nil {
		return fmt.Errorf("copy destination %q: %w", dst, err)
	}
	return nil
}

func (p *driveProvider) EnsurePathExists(ctx context.Context, folderPath string) error {
	_, err := p.resolveFolder(ctx, strings.TrimSuffix(folderPath, "/"), true)
	return err
}

func (p *driveProvider) DeleteFolder(ctx context.Context, folderPath string) error {
	folderPath = strings.TrimSuffix(folderPath, "/")

	folderID, err := p.resolveFolder(ctx, folderPath, false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	err = p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			Delete("/api/v1/folders/" + folderID)
		mapped := p.mapDriveResponse("delete folder "+folderPath, resp, err)
		if errors.Is(mapped, ErrNotFound) {
			return nil
		}
		return mapped
	})
	if err != nil {
		return err
	}

	p.invalidateSubtree(folderPath)
	return nil
}

func (p *driveProvider) Verify(ctx context.Context) error {
	if _, err := p.List(ctx, ""); err != nil {
		return fmt.Errorf("verify drive credentials: %w", err)
	}
	return nil
}

// resolveFolder maps a virtual path ("backups/daily-3") to a drive folder
// id, creating missing segments when create is true. Resolved ids are
// cached; concurrent creation attempts for the same path coalesce into one
// in-flight request so two sessions racing on EnsurePathExists cannot
// produce duplicate folders.
func (p *driveProvider) resolveFolder(ctx context.Context, folderPath string, create bool) (string, error) {
	segments := []string{p.cfg.RootFolder}
	if folderPath != "" {
		segments = append(segments, strings.Split(folderPath, "/")...)
	}

	parentID := "" // drive root
	walked := ""
	for _, segment := range segments {
		if walked == "" {
			walked = segment
		} else {
			walked = walked + "/" + segment
		}

		id, err := p.resolveSegment(ctx, walked, parentID, segment, create)
		if err != nil {
			return "", err
		}
		parentID = id
	}

	return parentID, nil
}

// resolveSegment resolves one path segment under parentID, consulting the
// cache first and coalescing concurrent lookups/creations of the same path.
func (p *driveProvider) resolveSegment(ctx context.Context, cachePath, parentID, name string, create bool) (string, error) {
	p.mu.Lock()
	if id, ok := p.pathIDs[cachePath]; ok {
		p.mu.Unlock()
		return id, nil
	}
	if pending, ok := p.inflight[cachePath]; ok {
		p.mu.Unlock()
		select {
		case <-pending.done:
			return pending.id, pending.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	pending := &pendingFolder{done: make(chan struct{})}
	p.inflight[cachePath] = pending
	p.mu.Unlock()

	id, err := p.lookupOrCreateFolder(ctx, parentID, name, create)

	p.mu.Lock()
	delete(p.inflight, cachePath)
	if err == nil {
		p.pathIDs[cachePath] = id
	}
	p.mu.Unlock()

	pending.id = id
	pending.err = err
	close(pending.done)

	return id, err
}

func (p *driveProvider) lookupOrCreateFolder(ctx context.Context, parentID, name string, create bool) (string, error) {
	var entries []driveEntry
	err := p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		req := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			SetQueryParam("name", name).
			SetResult(&entries)

		target := "/api/v1/folders/" + parentID + "/children"
		if parentID == "" {
			target = "/api/v1/root/children"
		}
		resp, err := req.Get(target)
		return p.mapDriveResponse("lookup folder "+name, resp, err)
	})
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Folder && e.Name == name {
			return e.ID, nil
		}
	}

	if !create {
		return "", fmt.Errorf("folder %q: %w", name, ErrNotFound)
	}

	var created driveEntry
	err = p.retryer.Do(ctx, func() error {
		if err := p.checkToken(); err != nil {
			return err
		}
		resp, err := p.client.R().
			SetContext(ctx).
			SetAuthToken(p.currentToken()).
			SetHeader("Content-Type", "application/json").
			SetBody(folderCreateRequest{ParentID: parentID, Name: name}).
			SetResult(&created).
			Post("/api/v1/folders")
		return p.mapDriveResponse("create folder "+name, resp, err)
	})
	if err != nil {
		return "", err
	}

	return created.ID, nil
}

// invalidateSubtree drops every cached folder id at or under folderPath.
func (p *driveProvider) invalidateSubtree(folderPath string) {
	full := p.cfg.RootFolder
	if folderPath != "" {
		full = p.cfg.RootFolder + "/" + folderPath
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for cached := range p.pathIDs {
		if cached == full || strings.HasPrefix(cached, full+"/") {
			delete(p.pathIDs, cached)
		}
	}
}

// mapDriveResponse converts a resty result into the provider taxonomy.
func (p *driveProvider) mapDriveResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrNetworkTransient, err)
	}

	switch {
	case resp.StatusCode() < 300:
		return nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		p.handleAuthExpired()
		return fmt.Errorf("%s: %w", op, ErrAuthExpired)
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode() == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", op, ErrRateLimited)
	case resp.StatusCode() >= 500:
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode(), ErrNetworkTransient)
	default:
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
	}
}
