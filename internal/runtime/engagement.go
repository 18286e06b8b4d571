package runtime

import (
	"context"
	"math"
	"strings"

	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	eventpkg "github.com/drblury/tagflow/internal/runtime/event"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
	"github.com/drblury/tagflow/internal/runtime/validate"
)

// PageView describes a page view. An empty Path falls back to the ambient
// environment; when no path is resolvable the call is skipped silently.
type PageView struct {
	Path     string
	Title    string
	Referrer string
}

// TrackPageView reports a page_view event. A view with no resolvable path is
// not an error: it is skipped with a debug log.
func (t *Tracker) TrackPageView(ctx context.Context, in PageView, opts ...TrackOption) error {
	if in.Path == "" && t.envInfo != nil {
		env := t.envInfo()
		in.Path = env.Path
		if in.Title == "" {
			in.Title = env.Title
		}
		if in.Referrer == "" {
			in.Referrer = env.Referrer
		}
	}
	if in.Path == "" {
		t.Logger.Debug("Page view skipped, no resolvable path", nil)
		return nil
	}

	params := map[string]any{"page_path": in.Path}
	if in.Title != "" {
		params["page_title"] = in.Title
	}
	if in.Referrer != "" {
		params["page_referrer"] = in.Referrer
	}

	t.track(ctx, eventpkg.NamePageView, params, eventpkg.CategoryNavigation, opts)
	return nil
}

// Search describes a site search.
type Search struct {
	Term string
}

// TrackSearch reports a search event. A blank term is skipped silently.
func (t *Tracker) TrackSearch(ctx context.Context, in Search, opts ...TrackOption) error {
	term := strings.TrimSpace(in.Term)
	if term == "" {
		t.Logger.Debug("Search skipped, empty term", nil)
		return nil
	}

	t.track(ctx, eventpkg.NameSearch, map[string]any{"search_term": term}, eventpkg.CategoryEngagement, opts)
	return nil
}

// Login describes a sign-in.
type Login struct {
	Method string
}

// TrackLogin reports a login event.
func (t *Tracker) TrackLogin(ctx context.Context, in Login, opts ...TrackOption) error {
	params := map[string]any{}
	if in.Method != "" {
		params["method"] = in.Method
	}
	t.track(ctx, eventpkg.NameLogin, params, eventpkg.CategoryEngagement, opts)
	return nil
}

// SignUp describes an account creation.
type SignUp struct {
	Method string
}

// TrackSignUp reports a sign_up event.
func (t *Tracker) TrackSignUp(ctx context.Context, in SignUp, opts ...TrackOption) error {
	params := map[string]any{}
	if in.Method != "" {
		params["method"] = in.Method
	}
	t.track(ctx, eventpkg.NameSignUp, params, eventpkg.CategoryEngagement, opts)
	return nil
}

// Share describes content being shared.
type Share struct {
	Method      string
	ContentType string
	ItemID      string
}

// TrackShare reports a share event.
func (t *Tracker) TrackShare(ctx context.Context, in Share, opts ...TrackOption) error {
	params := map[string]any{}
	if in.Method != "" {
		params["method"] = in.Method
	}
	if in.ContentType != "" {
		params["content_type"] = in.ContentType
	}
	if in.ItemID != "" {
		params["item_id"] = in.ItemID
	}
	t.track(ctx, eventpkg.NameShare, params, eventpkg.CategoryInteraction, opts)
	return nil
}

// SelectContent describes a content selection.
type SelectContent struct {
	ContentType string
	ItemID      string
}

// TrackSelectContent reports a select_content event.
func (t *Tracker) TrackSelectContent(ctx context.Context, in SelectContent, opts ...TrackOption) error {
	params := map[string]any{}
	if in.ContentType != "" {
		params["content_type"] = in.ContentType
	}
	if in.ItemID != "" {
		params["item_id"] = in.ItemID
	}
	t.track(ctx, eventpkg.NameSelectContent, params, eventpkg.CategoryInteraction, opts)
	return nil
}

// Engagement describes a span of active user engagement.
type Engagement struct {
	// TimeMillis is the engagement duration in milliseconds.
	TimeMillis int64
}

// TrackEngagement reports a user_engagement event.
func (t *Tracker) TrackEngagement(ctx context.Context, in Engagement, opts ...TrackOption) error {
	params := map[string]any{}
	if in.TimeMillis > 0 {
		params["engagement_time_msec"] = in.TimeMillis
	}
	t.track(ctx, eventpkg.NameUserEngagement, params, eventpkg.CategoryEngagement, opts)
	return nil
}

// VideoAction discriminates the video event family.
type VideoAction string

const (
	VideoActionStart    VideoAction = "start"
	VideoActionProgress VideoAction = "progress"
	VideoActionComplete VideoAction = "complete"
)

// Video describes playback progress of an embedded video.
type Video struct {
	Action      VideoAction
	Title       string
	URL         string
	Duration    float64
	CurrentTime float64
	Percent     int
}

// TrackVideo reports a video_start, video_progress, or video_complete event
// depending on the action. An unknown action is a programmer error.
func (t *Tracker) TrackVideo(ctx context.Context, in Video, opts ...TrackOption) error {
	var name string
	switch in.Action {
	case VideoActionStart:
		name = eventpkg.NameVideoStart
	case VideoActionProgress:
		name = eventpkg.NameVideoProgress
	case VideoActionComplete:
		name = eventpkg.NameVideoComplete
	default:
		return errspkg.UnsupportedActionError{Kind: "video", Value: string(in.Action)}
	}

	params := map[string]any{}
	if in.Title != "" {
		params["video_title"] = in.Title
	}
	if in.URL != "" {
		params["video_url"] = in.URL
	}
	if in.Duration > 0 {
		params["video_duration"] = in.Duration
	}
	if in.CurrentTime > 0 {
		params["video_current_time"] = in.CurrentTime
	}
	if in.Percent > 0 {
		params["video_percent"] = in.Percent
	}

	t.track(ctx, name, params, eventpkg.CategoryEngagement, opts)
	return nil
}

// Exception describes a caught application error.
type Exception struct {
	Description string
	Fatal       bool
}

// TrackException reports an exception event.
func (t *Tracker) TrackException(ctx context.Context, in Exception, opts ...TrackOption) error {
	params := map[string]any{"fatal": in.Fatal}
	if in.Description != "" {
		params["description"] = in.Description
	}
	t.track(ctx, eventpkg.NameException, params, eventpkg.CategoryError, opts)
	return nil
}

// Timing describes a measured duration.
type Timing struct {
	Name string
	// Value is the duration in milliseconds; it is rounded to the nearest
	// integer before dispatch.
	Value    float64
	Category string
	Label    string
}

// TrackTiming reports a timing_complete event.
func (t *Tracker) TrackTiming(ctx context.Context, in Timing, opts ...TrackOption) error {
	params := map[string]any{
		"name":  in.Name,
		"value": int64(math.Round(in.Value)),
	}
	if in.Category != "" {
		params["event_category"] = in.Category
	}
	if in.Label != "" {
		params["event_label"] = in.Label
	}
	t.track(ctx, eventpkg.NameTimingComplete, params, eventpkg.CategoryPerformance, opts)
	return nil
}

// TrackEvent reports a custom event with a caller-chosen name. The name must
// pass the event-name rules and the parameter bag is capped.
func (t *Tracker) TrackEvent(ctx context.Context, name string, params map[string]any, opts ...TrackOption) error {
	if err := validate.EventName(name); err != nil {
		return err
	}
	if err := validate.ParameterCount(params); err != nil {
		return err
	}

	copied := make(map[string]any, len(params))
	for k, v := range params {
		copied[k] = v
	}

	if t.Conf.Debug {
		t.Logger.Debug("Tracking custom event", loggingpkg.LogFields{"event": name})
	}
	t.track(ctx, name, copied, eventpkg.CategoryCustom, opts)
	return nil
}
