package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sporefield/config"
	"github.com/pthm-cable/sporefield/systems"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkLeadChange      BookmarkType = "lead_change"
	BookmarkPortalCaptured  BookmarkType = "portal_captured"
	BookmarkFactionCollapse BookmarkType = "faction_collapse"
	BookmarkStalemate       BookmarkType = "stalemate"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// stalemateWindows is how many consecutive windows of unchanged counts make
// a stalemate.
const stalemateWindows = 5

// BookmarkDetector detects interesting moments in the match.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []FieldStats
	historySize int
	historyIdx  int
	historyFull bool

	leader       systems.SporeType
	peak         [2]int // recent peak of good, evil
	stableCount  int
	stalemateHit bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < stalemateWindows {
		historySize = stalemateWindows
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]FieldStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats FieldStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkLeadChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if prev, ok := bd.last(); ok {
		bookmarks = append(bookmarks, bd.checkPortalCaptured(prev, stats)...)

		if b := bd.checkStalemate(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bookmarks = append(bookmarks, bd.checkCollapse(stats)...)

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats FieldStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) last() (FieldStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return FieldStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

// checkLeadChange fires when a faction overtakes the previous leader by at
// least the configured margin. Ties never change the leader.
func (bd *BookmarkDetector) checkLeadChange(stats FieldStats) *Bookmark {
	leader := stats.Leader()
	if leader == systems.SporeEmpty || stats.Margin() < bd.cfg.LeadChange.MinMargin {
		return nil
	}

	prev := bd.leader
	if prev == leader {
		return nil
	}
	bd.leader = leader
	if prev == systems.SporeEmpty {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkLeadChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s took the lead by %d cells", leader, stats.Margin()),
	}
}

func (bd *BookmarkDetector) checkPortalCaptured(prev, stats FieldStats) []Bookmark {
	var out []Bookmark
	if gained := stats.GoodPortals - prev.GoodPortals; gained > 0 {
		out = append(out, Bookmark{
			Type:        BookmarkPortalCaptured,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("good gained %d portal(s), now %d", gained, stats.GoodPortals),
		})
	}
	if gained := stats.EvilPortals - prev.EvilPortals; gained > 0 {
		out = append(out, Bookmark{
			Type:        BookmarkPortalCaptured,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("evil gained %d portal(s), now %d", gained, stats.EvilPortals),
		})
	}
	return out
}

// checkCollapse fires when a faction dropped by more than DropPercent and at
// least MinDrop cells from its recent peak. The peak resets after a trigger.
func (bd *BookmarkDetector) checkCollapse(stats FieldStats) []Bookmark {
	var out []Bookmark
	counts := [2]int{stats.Good + stats.GoodPortals, stats.Evil + stats.EvilPortals}
	names := [2]systems.SporeType{systems.SporeGood, systems.SporeEvil}

	for i, n := range counts {
		peak := bd.peak[i]
		if n > peak {
			bd.peak[i] = n
			continue
		}
		if peak == 0 {
			continue
		}
		drop := 1 - float64(n)/float64(peak)
		if drop > bd.cfg.FactionCollapse.DropPercent && peak-n >= bd.cfg.FactionCollapse.MinDrop {
			out = append(out, Bookmark{
				Type:        BookmarkFactionCollapse,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s collapsed %.0f%% from peak %d to %d", names[i], drop*100, peak, n),
			})
			bd.peak[i] = n
		}
	}
	return out
}

// checkStalemate fires once when faction counts stay unchanged for
// stalemateWindows consecutive windows.
func (bd *BookmarkDetector) checkStalemate(prev, stats FieldStats) *Bookmark {
	same := prev.Good+prev.GoodPortals == stats.Good+stats.GoodPortals &&
		prev.Evil+prev.EvilPortals == stats.Evil+stats.EvilPortals
	if !same {
		bd.stableCount = 0
		bd.stalemateHit = false
		return nil
	}

	bd.stableCount++
	if bd.stableCount < stalemateWindows || bd.stalemateHit {
		return nil
	}
	bd.stalemateHit = true
	return &Bookmark{
		Type:        BookmarkStalemate,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("no change for %d windows: good %d, evil %d", stalemateWindows, stats.Good+stats.GoodPortals, stats.Evil+stats.EvilPortals),
	}
}
