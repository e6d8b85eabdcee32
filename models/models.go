package models

import "time"

type Platform string

const (
	TikTok   Platform = "tiktok"
	YouTube  Platform = "youtube"
	Facebook Platform = "facebook"
	Threads  Platform = "threads"
)

// AllPlatforms is the declaration order. Cycles publish in this order.
var AllPlatforms = []Platform{TikTok, YouTube, Facebook, Threads}

// SystemPlatform is the pseudo-platform used for feed entries not tied to a channel.
const SystemPlatform = "System"

func (p Platform) Valid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

type CycleStatus string

const (
	StatusIdle               CycleStatus = "IDLE"
	StatusFetching           CycleStatus = "FETCHING"
	StatusRewriting          CycleStatus = "REWRITING"
	StatusPosting            CycleStatus = "POSTING"
	StatusWaitingForSchedule CycleStatus = "WAITING_FOR_SCHEDULE"
	StatusError              CycleStatus = "ERROR"
)

type LogOutcome string

const (
	OutcomeSuccess LogOutcome = "Success"
	OutcomePending LogOutcome = "Pending"
	OutcomeFailed  LogOutcome = "Failed"
)

type MediaType string

const (
	MediaImage   MediaType = "image"
	MediaVideo   MediaType = "video"
	MediaUnknown MediaType = "unknown"
)

// ContentLogEntry is one line of the distribution feed. Entries are never mutated.
type ContentLogEntry struct {
	ID             string     `json:"id"`
	Timestamp      time.Time  `json:"timestamp"`
	Platform       string     `json:"platform"`
	SourceURL      string     `json:"source_url"`
	Caption        string     `json:"caption"`
	Status         LogOutcome `json:"status"`
	ExternalPostID string     `json:"external_post_id,omitempty"`
}

type LinkedAccount struct {
	Platform    Platform   `json:"platform"`
	Linked      bool       `json:"linked"`
	Handle      string     `json:"handle,omitempty"`
	LinkedAt    *time.Time `json:"linked_at,omitempty"`
	AccessToken string     `json:"-"`
}

// AutomationSettings is the editable configuration of the pipeline.
type AutomationSettings struct {
	SourceIdentity     string            `json:"source_identity" yaml:"source_identity"`
	RewriteInstruction string            `json:"rewrite_instruction" yaml:"rewrite_instruction"`
	ScheduleHours      []int             `json:"schedule_hours" yaml:"schedule_hours"`
	Platforms          map[Platform]bool `json:"platforms" yaml:"platforms"`
}

func DefaultSettings() AutomationSettings {
	return AutomationSettings{
		SourceIdentity:     "cristiano",
		RewriteInstruction: "Make it sound professional but hyped for a younger audience.",
		ScheduleHours:      []int{6, 9, 12},
		Platforms: map[Platform]bool{
			TikTok:   true,
			YouTube:  true,
			Facebook: false,
			Threads:  true,
		},
	}
}

// Clone returns a deep copy so callers can't mutate shared slices or maps.
func (s AutomationSettings) Clone() AutomationSettings {
	out := s
	out.ScheduleHours = append([]int(nil), s.ScheduleHours...)
	out.Platforms = make(map[Platform]bool, len(s.Platforms))
	for p, on := range s.Platforms {
		out.Platforms[p] = on
	}
	return out
}

// EnabledPlatforms lists enabled platforms in declaration order.
func (s AutomationSettings) EnabledPlatforms() []Platform {
	var out []Platform
	for _, p := range AllPlatforms {
		if s.Platforms[p] {
			out = append(out, p)
		}
	}
	return out
}

type SourcePost struct {
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	MediaType MediaType `json:"media_type"`
	MimeType  string    `json:"mime_type"`
	Media     []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Post is the rendered content handed to publishers.
type Post struct {
	ID        string     `json:"id"`
	Source    SourcePost `json:"source"`
	Caption   string     `json:"caption"`
	CreatedAt time.Time  `json:"created_at"`
}

type PublishResult struct {
	Platform Platform `json:"platform"`
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	PostID   string   `json:"post_id,omitempty"`
}

// RunnerSnapshot is what the dashboard polls.
type RunnerSnapshot struct {
	Status    CycleStatus `json:"status"`
	Running   bool        `json:"running"`
	NextRun   *time.Time  `json:"next_run,omitempty"`
	Countdown string      `json:"countdown,omitempty"`
	LastError string      `json:"last_error,omitempty"`
}

type StatusResponse struct {
	RunnerSnapshot
	ChannelsArmed bool   `json:"channels_armed"`
	Schedule      string `json:"schedule"`
}
