package services

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"nudgeup/internal/models/db_models"
	"nudgeup/internal/models/response_models"
	"nudgeup/internal/repositories"
	"nudgeup/pkg/utils"
)

// RosterService merges the member rosters found across every
// partition holding a copy of a group into one canonical roster. Any
// partition may be stale or partial; the merge converges to the same
// result regardless of scan order.
type RosterServiceInterface interface {
	MergedRoster(ctx context.Context, groupID, viewerID string) ([]response_models.RosterEntry, error)
	CanonicalRoster(ctx context.Context, groupID string) (map[string]db_models.GroupMember, error)
}

type RosterService struct {
	groupRepo repositories.GroupRepositoryInterface
	logger    *zap.Logger
}

func NewRosterService(groupRepo repositories.GroupRepositoryInterface, logger *zap.Logger) *RosterService {
	return &RosterService{groupRepo: groupRepo, logger: logger}
}

type rosterCandidate struct {
	member db_models.GroupMember
	source string // partition owner the record was read from
}

// A real display name always beats a placeholder, whatever partition
// it came from; among equally-named candidates the owner's own
// partition holds the freshest copy.
func (c rosterCandidate) priority(canonicalID string) int {
	p := 0
	if !placeholderName(c.member.Name) {
		p += 2
	}
	if c.source == canonicalID {
		p++
	}
	return p
}

func placeholderName(name string) bool {
	return name == "" || name == db_models.SelfLabel
}

// CanonicalRoster returns the merged roster keyed by real user id,
// with every self alias resolved to the owning partition's id. One
// unreadable partition is skipped, not fatal: the result is then
// partial and corrected on the next trigger.
func (s *RosterService) CanonicalRoster(ctx context.Context, groupID string) (map[string]db_models.GroupMember, error) {
	owners, err := s.groupRepo.ListPartitions(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	best := make(map[string]rosterCandidate)
	for _, owner := range owners {
		members, err := s.groupRepo.ListMembers(ctx, owner, groupID)
		if err != nil {
			s.logger.Warn("skipping unreadable partition during roster merge",
				zap.String("partition", owner), zap.String("group", groupID), zap.Error(err))
			continue
		}
		for _, member := range members {
			canonical := member.ID.Resolve(owner)
			if canonical == "" {
				continue
			}
			cand := rosterCandidate{member: member, source: owner}
			current, ok := best[canonical]
			if !ok || betterCandidate(cand, current, canonical) {
				best[canonical] = cand
			}
		}
	}

	roster := make(map[string]db_models.GroupMember, len(best))
	for canonical, cand := range best {
		member := cand.member
		member.ID = db_models.CanonicalRef(canonical)
		roster[canonical] = member
	}
	return roster, nil
}

// Ties at equal priority break on the source partition id so the
// merge is insensitive to iteration order.
func betterCandidate(a, b rosterCandidate, canonicalID string) bool {
	pa, pb := a.priority(canonicalID), b.priority(canonicalID)
	if pa != pb {
		return pa > pb
	}
	return a.source < b.source
}

// MergedRoster emits the roster as seen by viewerID: the viewer's own
// record is relabeled to the generic self id and label, everyone else
// keeps their real id. A member who never set a display name gets a
// deterministic fallback rather than the self label, so two different
// humans can never both show as "You" in a third party's view.
func (s *RosterService) MergedRoster(ctx context.Context, groupID, viewerID string) ([]response_models.RosterEntry, error) {
	roster, err := s.CanonicalRoster(ctx, groupID)
	if err != nil {
		return nil, err
	}

	entries := make([]response_models.RosterEntry, 0, len(roster))
	for canonical, member := range roster {
		entry := response_models.RosterEntry{
			ID:       canonical,
			Name:     member.Name,
			Avatar:   member.Avatar,
			JoinedAt: member.JoinedAt,
		}
		if canonical == viewerID {
			entry.ID = db_models.SelfAliasID
			entry.Name = db_models.SelfLabel
		} else if placeholderName(entry.Name) {
			entry.Name = fallbackDisplayName(canonical)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].JoinedAt != entries[j].JoinedAt {
			return entries[i].JoinedAt < entries[j].JoinedAt
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func fallbackDisplayName(userID string) string {
	if len(userID) > 8 {
		userID = userID[:8]
	}
	return "User " + userID
}
