package leaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/industry-overview/internal/domain"
	"github.com/aristath/industry-overview/internal/modules/filter"
)

func leaderFixtures() []domain.LeaderRecord {
	return []domain.LeaderRecord{
		{Company: "Zeta", Country: "Germany", CompanySize: "large", Tier: domain.TierA, Year: 2023},
		{Company: "Acme", Country: "Germany", CompanySize: "large", Tier: domain.TierB, Year: 2023},
		{Company: "Acme", Country: "Germany", CompanySize: "large", Tier: domain.TierB, Year: 2022},
		{Company: "Acme", Country: "Germany", CompanySize: "large", Tier: domain.TierB, Year: 2022},
		{Company: "Birch", Country: "France", CompanySize: "small", Tier: domain.TierA, Year: 2021},
	}
}

func TestClassify(t *testing.T) {
	ref := NewReference("Zeta", "Birch")

	assert.Equal(t, LabelTierALeader, Classify("Zeta", ref))
	assert.Equal(t, LabelOther, Classify("Acme", ref))
	assert.Equal(t, LabelOther, Classify("Zeta", Reference{}))
}

func TestTierA_IgnoresTierSelection(t *testing.T) {
	p := filter.Predicates{
		Countries: filter.NewSet("Germany"),
		Sizes:     filter.NewSet("large"),
		Tiers:     filter.NewSet("B"),
	}

	ref := TierA(leaderFixtures(), p)
	assert.Equal(t, []string{"Zeta"}, ref.Names())
	assert.Equal(t, 1, ref.Len())
}

func TestTable(t *testing.T) {
	p := filter.Predicates{
		Countries: filter.NewSet("Germany", "France"),
		Sizes:     filter.NewSet("large", "small"),
	}

	res := Table(leaderFixtures(), p)
	require.True(t, res.IsOK())
	assert.Equal(t, []Row{
		{Company: "Acme", Country: "Germany", Year: 2022, Tier: domain.TierB},
		{Company: "Acme", Country: "Germany", Year: 2023, Tier: domain.TierB},
		{Company: "Birch", Country: "France", Year: 2021, Tier: domain.TierA},
		{Company: "Zeta", Country: "Germany", Year: 2023, Tier: domain.TierA},
	}, res.Data)
}

func TestTable_NoMatchingRows(t *testing.T) {
	p := filter.Predicates{
		Countries: filter.NewSet("Germany"),
		Sizes:     filter.NewSet("large"),
		Tiers:     filter.NewSet(),
	}

	res := Table(leaderFixtures(), p)
	assert.Equal(t, domain.StatusNoMatchingRows, res.Status)
	assert.Nil(t, res.Data)
}
