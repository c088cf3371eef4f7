package video

import (
	"net/url"
	"strings"
)

// Info is an embeddable how-to video reference for an exercise.
type Info struct {
	Title string `json:"title"`
	Embed string `json:"embed"`
}

// defaultVideos maps normalized exercise names to how-to videos used when
// the catalog row has no stored URL.
var defaultVideos = map[string]Info{
	"squat":             {Title: "How to Squat Properly", Embed: "https://www.youtube.com/embed/YaXPRqUwItQ"},
	"deadlift":          {Title: "How to Deadlift (Conventional)", Embed: "https://www.youtube.com/embed/op9kVnSso6Q"},
	"bench press":       {Title: "How to Bench Press", Embed: "https://www.youtube.com/embed/gRVjAtPip0Y"},
	"overhead press":    {Title: "Overhead Press Form", Embed: "https://www.youtube.com/embed/qEwKCR5JCog"},
	"shoulder press":    {Title: "Dumbbell Shoulder Press Form", Embed: "https://www.youtube.com/embed/B-aVuyhvLHU"},
	"barbell row":       {Title: "Barbell Row Technique", Embed: "https://www.youtube.com/embed/vT2GjY_Umpw"},
	"row":               {Title: "Seated Cable Row Form", Embed: "https://www.youtube.com/embed/GZbfZ033f74"},
	"lat pulldown":      {Title: "Lat Pulldown Form", Embed: "https://www.youtube.com/embed/CAwf7n6Luuc"},
	"pull up":           {Title: "Proper Pull-Up Technique", Embed: "https://www.youtube.com/embed/eGo4IYlbE5g"},
	"pull-up":           {Title: "Proper Pull-Up Technique", Embed: "https://www.youtube.com/embed/eGo4IYlbE5g"},
	"push up":           {Title: "Push-Up Form Guide", Embed: "https://www.youtube.com/embed/IODxDxX7oi4"},
	"push-up":           {Title: "Push-Up Form Guide", Embed: "https://www.youtube.com/embed/IODxDxX7oi4"},
	"lunge":             {Title: "How to Do Lunges", Embed: "https://www.youtube.com/embed/QOVaHwm-Q6U"},
	"plank":             {Title: "Plank Basics", Embed: "https://www.youtube.com/embed/pSHjTRCQxIw"},
	"burpee":            {Title: "How to Do a Burpee", Embed: "https://www.youtube.com/embed/JZQA08SlJnM"},
	"bicep curl":        {Title: "Dumbbell Bicep Curl", Embed: "https://www.youtube.com/embed/in7PaeYlhrM"},
	"tricep dip":        {Title: "Tricep Dips", Embed: "https://www.youtube.com/embed/6kALZikXxLc"},
	"hip thrust":        {Title: "Barbell Hip Thrust", Embed: "https://www.youtube.com/embed/LM8XHLYJoYs"},
	"romanian deadlift": {Title: "Romanian Deadlift (RDL)", Embed: "https://www.youtube.com/embed/JCXUYuzwNrM"},
	"incline bench":     {Title: "Incline Bench Press", Embed: "https://www.youtube.com/embed/DbFgADa2PL8"},
	"chest fly":         {Title: "Dumbbell Chest Fly", Embed: "https://www.youtube.com/embed/eozdVDA78K0"},
	"leg press":         {Title: "Leg Press Machine", Embed: "https://www.youtube.com/embed/IZxyjW7MPJQ"},
}

// Lookup returns the default how-to video for an exercise name, if one is
// known. It first tries an exact lowercase match, then strips equipment
// qualifiers (barbell, dumbbell, machine) and tries again.
func Lookup(exerciseName string) (Info, bool) {
	if exerciseName == "" {
		return Info{}, false
	}

	key := strings.ToLower(strings.TrimSpace(exerciseName))
	if info, ok := defaultVideos[key]; ok {
		return info, true
	}

	simplified := key
	for _, qualifier := range []string{"barbell", "dumbbell", "machine"} {
		simplified = strings.ReplaceAll(simplified, qualifier, "")
	}
	simplified = strings.Join(strings.Fields(simplified), " ")

	info, ok := defaultVideos[simplified]
	return info, ok
}

// Normalize converts a video URL into its canonical embeddable form.
//
// YouTube: watch pages and youtu.be short links map to /embed/{id}; embed
// URLs (including youtube-nocookie) pass through. Vimeo: vimeo.com page
// links map to player.vimeo.com/video/{id}; player links pass through.
// Anything else is returned unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.TrimSpace(raw)

	if strings.Contains(raw, "youtube.com/embed/") || strings.Contains(raw, "youtube-nocookie.com/embed/") {
		return raw
	}

	if strings.Contains(raw, "youtube.com/watch") && strings.Contains(raw, "v=") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		if vid := parsed.Query().Get("v"); vid != "" {
			return "https://www.youtube.com/embed/" + vid
		}
	}

	if idx := strings.Index(raw, "youtu.be/"); idx != -1 {
		vid := raw[idx+len("youtu.be/"):]
		if q := strings.Index(vid, "?"); q != -1 {
			vid = vid[:q]
		}
		if vid != "" {
			return "https://www.youtube.com/embed/" + vid
		}
	}

	if strings.Contains(raw, "player.vimeo.com/video/") {
		return raw
	}

	if idx := strings.Index(raw, "vimeo.com/"); idx != -1 {
		path := raw[idx+len("vimeo.com/"):]
		if q := strings.Index(path, "?"); q != -1 {
			path = path[:q]
		}
		// The video ID is always the last path segment, e.g.
		// vimeo.com/123 or vimeo.com/channels/staffpicks/123.
		parts := strings.Split(path, "/")
		vid := parts[len(parts)-1]
		if vid != "" && isDigits(vid) {
			return "https://player.vimeo.com/video/" + vid
		}
	}

	return raw
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
