// Package service loads and mutates the plugin settings
package service

import (
	"context"
	"fmt"
	"strconv"

	"bulkdate/internal/modkit/repokit"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/logger"
	entdomain "bulkdate/internal/services/entities/domain"
	"bulkdate/internal/services/settings/domain"
	"bulkdate/internal/services/settings/repo"

	json "github.com/goccy/go-json"
)

// Service defines the settings contract
type Service interface {
	domain.ServicePort
	Activate(ctx context.Context) ([]string, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
}

// New creates a new settings service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], log logger.Logger) *Svc {
	if db == nil {
		panic("settings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("settings.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		log:    log.With().Str("mod", "settings").Logger(),
	}
}

// Activate seeds every missing option with its default and returns the
// names it added. Existing values are left alone
func (s *Svc) Activate(ctx context.Context) ([]string, error) {
	d := domain.Defaults()
	tabs, err := json.Marshal(d.Tabs)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode default tabs")
	}
	seed := []struct{ name, value string }{
		{domain.OptHistoryEnabled, formatBool(d.HistoryEnabled)},
		{domain.OptHistoryRetention, strconv.Itoa(d.RetentionDays)},
		{domain.OptTabs, string(tabs)},
	}

	var added []string
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		for _, o := range seed {
			ok, err := r.AddIfMissing(ctx, o.name, o.value)
			if err != nil {
				return err
			}
			if ok {
				added = append(added, o.name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		s.log.Info().Strs("options", added).Msg("settings activated")
	}
	return added, nil
}

// Get loads the settings; missing or unreadable options fall back to defaults
func (s *Svc) Get(ctx context.Context) (domain.Settings, error) {
	raw, err := s.Repo.All(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return s.decode(raw), nil
}

func (s *Svc) decode(raw map[string]string) domain.Settings {
	out := domain.Defaults()

	if v, ok := raw[domain.OptHistoryEnabled]; ok {
		out.HistoryEnabled = parseBool(v)
	}
	if v, ok := raw[domain.OptHistoryRetention]; ok {
		n, _ := strconv.Atoi(v)
		out.RetentionDays = domain.NormalizeRetention(n)
	}
	if v, ok := raw[domain.OptTabs]; ok && v != "" {
		tabs := map[string]bool{}
		if err := json.Unmarshal([]byte(v), &tabs); err != nil {
			s.log.Warn().Err(err).Msg("tabs option unreadable, using defaults")
		} else {
			out.Tabs = tabs
		}
	}
	return out
}

// Update changes the history toggle and retention period
func (s *Svc) Update(ctx context.Context, in domain.UpdateInput) (domain.Settings, error) {
	if in.RetentionDays != 0 && domain.NormalizeRetention(in.RetentionDays) != in.RetentionDays {
		return domain.Settings{}, perr.WithField(
			perr.InvalidArgf("retention must be one of %v days", domain.Retentions), "history_retention_days")
	}

	var out domain.Settings
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if in.HistoryEnabled != nil {
			if err := r.Set(ctx, domain.OptHistoryEnabled, formatBool(*in.HistoryEnabled)); err != nil {
				return err
			}
		}
		if in.RetentionDays != 0 {
			if err := r.Set(ctx, domain.OptHistoryRetention, strconv.Itoa(in.RetentionDays)); err != nil {
				return err
			}
		}
		raw, err := r.All(ctx)
		if err != nil {
			return err
		}
		out = s.decode(raw)
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}

	s.log.Info().Bool("history_enabled", out.HistoryEnabled).Int("retention_days", out.RetentionDays).Msg("settings updated")
	return out, nil
}

// ToggleTab switches one tab and returns the confirmation message
func (s *Svc) ToggleTab(ctx context.Context, in domain.ToggleInput) (domain.ToggleResult, error) {
	tab := entdomain.SanitizeKey(in.Tab)
	if tab == "" {
		return domain.ToggleResult{}, perr.WithField(perr.InvalidArgf("tab is required"), "tab")
	}

	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		raw, err := r.All(ctx)
		if err != nil {
			return err
		}
		cur := s.decode(raw)
		tabs := make(map[string]bool, len(cur.Tabs)+1)
		for k, v := range cur.Tabs {
			tabs[k] = v
		}
		tabs[tab] = in.Enabled

		b, err := json.Marshal(tabs)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode tabs")
		}
		return r.Set(ctx, domain.OptTabs, string(b))
	})
	if err != nil {
		return domain.ToggleResult{}, err
	}

	state := "disabled"
	if in.Enabled {
		state = "enabled"
	}
	s.log.Info().Str("tab", tab).Bool("enabled", in.Enabled).Msg("tab toggled")
	return domain.ToggleResult{
		Tab:     tab,
		Enabled: in.Enabled,
		Message: fmt.Sprintf("The %s tab has been %s.", entdomain.Label(tab), state),
	}, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBool(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
