package api

import "testing"

func TestCategoryPercentageSum(t *testing.T) {
	cs := CategoryStats{
		{Category: "Social", Percentage: 45.3},
		{Category: "Tools", Percentage: 30.2},
		{Category: "Other", Percentage: 24.0},
	}
	if err := cs.Validate(); err != nil {
		t.Fatalf("expected valid: %v", err)
	}

	cs = append(cs, CategoryStat{Category: "Gaming", Percentage: 5})
	if err := cs.Validate(); err == nil {
		t.Fatal("expected sum 104.5 to fail")
	}
}

func TestCategoryEmptyIsValid(t *testing.T) {
	if err := (CategoryStats{}).Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestEcosystemValidate(t *testing.T) {
	e := &AppEcosystem{
		CrossPlatformApps: []string{"WeChat", "Chrome"},
		PhoneOnlyApps:     []string{"Camera"},
		ComputerOnlyApps:  []string{"Xcode"},
		TotalApps:         4,
	}
	if err := e.Validate(); err != nil {
		t.Fatal(err)
	}

	e.TotalApps = 5
	if err := e.Validate(); err == nil {
		t.Fatal("expected total mismatch")
	}

	e.TotalApps = 4
	e.ComputerOnlyApps = []string{"Chrome"}
	if err := e.Validate(); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestValidateRanks(t *testing.T) {
	ok := []AppRanking{{Rank: 1, Percentage: 50}, {Rank: 2, Percentage: 50}}
	if err := ValidateRanks(ok); err != nil {
		t.Fatal(err)
	}
	gap := []AppRanking{{Rank: 1}, {Rank: 3}}
	if err := ValidateRanks(gap); err == nil {
		t.Fatal("expected gap error")
	}
	pct := []AppRanking{{Rank: 1, Percentage: 101}}
	if err := ValidateRanks(pct); err == nil {
		t.Fatal("expected percentage error")
	}
}

func TestTimeAllocationValidate(t *testing.T) {
	ta := TimeAllocation{
		{Hour: 0, PhoneDuration: 10, ComputerDuration: 5, TotalDuration: 15},
		{Hour: 23, PhoneDuration: 0, ComputerDuration: 0, TotalDuration: 0},
	}
	if err := ta.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := append(ta, HourlyAllocation{Hour: 0}).Validate(); err == nil {
		t.Fatal("expected duplicate hour")
	}
	if err := (TimeAllocation{{Hour: 24}}).Validate(); err == nil {
		t.Fatal("expected range error")
	}
	if err := (TimeAllocation{{Hour: 1, PhoneDuration: 1, TotalDuration: 2}}).Validate(); err == nil {
		t.Fatal("expected total mismatch")
	}
}

func TestOrderByCycle(t *testing.T) {
	if OrderByDuration.Next() != OrderByLaunches ||
		OrderByLaunches.Next() != OrderByNotifications ||
		OrderByNotifications.Next() != OrderByDuration {
		t.Fatal("unexpected cycle")
	}
	if OrderBy("bogus").Valid() {
		t.Fatal("bogus should be invalid")
	}
}

func TestGranularityCycle(t *testing.T) {
	if GranularityDaily.Next() != GranularityWeekly || GranularityMonthly.Next() != GranularityDaily {
		t.Fatal("unexpected cycle")
	}
	if !GranularityMonthly.Valid() || Granularity("").Valid() {
		t.Fatal("validity mismatch")
	}
}

func TestValidDate(t *testing.T) {
	for _, s := range []string{"", "20240115", "20240229"} {
		if !ValidDate(s) {
			t.Errorf("ValidDate(%q) = false", s)
		}
	}
	for _, s := range []string{"2024-01-15", "20241301", "20230229", "garbage", "202401150"} {
		if ValidDate(s) {
			t.Errorf("ValidDate(%q) = true", s)
		}
	}
}

func TestOrderedRange(t *testing.T) {
	if s, e := OrderedRange("20240131", "20240101"); s != "20240101" || e != "20240131" {
		t.Fatalf("reversed range not swapped: %s..%s", s, e)
	}
	if s, e := OrderedRange("20240131", ""); s != "20240131" || e != "" {
		t.Fatalf("open range changed: %s..%s", s, e)
	}
}
