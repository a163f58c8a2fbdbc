package label

// Profile is one of the behavioral labels in a user profile.
type Profile int

const (
	ProfileUnknown Profile = iota
	ProfilePhoneDependent
	ProfileComputerDependent
	ProfileBalanced
	ProfileRemoteWork
	ProfileOfficeWork
	ProfileHybridWork
	ProfilePhoneEntertainment
	ProfileComputerEntertainment
	ProfileHighProductivity
	ProfileMediumProductivity
	ProfileLowProductivity
	ProfileHealthy
	ProfileWarning
	ProfileDanger
)

var profiles = map[Profile]struct {
	text  string
	color string
}{
	ProfilePhoneDependent:        {"手機依賴型", "#1890FF"},
	ProfileComputerDependent:     {"電腦依賴型", "#52C41A"},
	ProfileBalanced:              {"平衡型", "#FAAD14"},
	ProfileRemoteWork:            {"遠程工作", "#722ED1"},
	ProfileOfficeWork:            {"辦公室工作", "#13C2C2"},
	ProfileHybridWork:            {"混合模式", "#FA8C16"},
	ProfilePhoneEntertainment:    {"手機娛樂型", "#EB2F96"},
	ProfileComputerEntertainment: {"電腦娛樂型", "#A0D911"},
	ProfileHighProductivity:      {"高生產力", "#52C41A"},
	ProfileMediumProductivity:    {"中生產力", "#FAAD14"},
	ProfileLowProductivity:       {"低生產力", "#F5222D"},
	ProfileHealthy:               {"健康", "#52C41A"},
	ProfileWarning:               {"警告", "#FA8C16"},
	ProfileDanger:                {"危險", "#F5222D"},
}

const profileUnknownColor = "#8C8C8C"

// ParseProfile resolves a label exactly as the backend spells it.
func ParseProfile(s string) (Profile, bool) {
	for p, info := range profiles {
		if info.text == s {
			return p, true
		}
	}
	return ProfileUnknown, false
}

func (p Profile) String() string {
	if info, ok := profiles[p]; ok {
		return info.text
	}
	return "未知"
}

func (p Profile) Color() string {
	if info, ok := profiles[p]; ok {
		return info.color
	}
	return profileUnknownColor
}

// Grade buckets a work-life balance score.
type Grade int

const (
	GradeNeedsWork Grade = iota
	GradeGood
	GradeExcellent
)

// GradeFor maps a 0-100 balance score to a grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 80:
		return GradeExcellent
	case score >= 60:
		return GradeGood
	}
	return GradeNeedsWork
}

func (g Grade) String() string {
	switch g {
	case GradeExcellent:
		return "優秀"
	case GradeGood:
		return "良好"
	}
	return "需改善"
}

func (g Grade) Color() string {
	switch g {
	case GradeExcellent:
		return "#52C41A"
	case GradeGood:
		return "#FAAD14"
	}
	return "#F5222D"
}
