// file: internals/features/school/marks/service/ranking.go
package service

import (
	"sort"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/marks/model"
)

type RankEntry struct {
	StudentID     uuid.UUID `json:"student_id"`
	MarksObtained int       `json:"marks_obtained"`
	Rank          int       `json:"rank"`
}

// CompetitionRanks: ranking kompetisi standar — nilai sama berbagi rank,
// nilai lebih rendah berikutnya memakai posisi 1-based di urutan.
// [90, 90, 70, 50] → [1, 1, 3, 4].
func CompetitionRanks(rows []model.MarksModel) []RankEntry {
	sorted := make([]model.MarksModel, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarksObtained > sorted[j].MarksObtained
	})

	out := make([]RankEntry, 0, len(sorted))
	rank := 0
	prev := -1
	for i, r := range sorted {
		if i == 0 || r.MarksObtained != prev {
			rank = i + 1
		}
		prev = r.MarksObtained
		out = append(out, RankEntry{
			StudentID:     r.MarksStudentID,
			MarksObtained: r.MarksObtained,
			Rank:          rank,
		})
	}
	return out
}

// Ranking: derivasi read-only di atas nilai APPROVED saja.
func (s *MarksService) Ranking(testID uuid.UUID) ([]RankEntry, error) {
	var rows []model.MarksModel
	if err := s.DB.
		Where("marks_test_id = ? AND marks_status = ?", testID, model.StatusApproved).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return CompetitionRanks(rows), nil
}
