package api

// Durations are milliseconds unless a field name says otherwise. Averages
// may be fractional. Dates are YYYYMMDD codes.

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Summary struct {
	TotalApps          int       `json:"totalApps"`
	TotalDurationMS    int64     `json:"totalDurationMS"`
	ActiveDays         int       `json:"activeDays"`
	AvgDailyDuration   float64   `json:"avgDailyDuration"`
	TotalLaunches      int64     `json:"totalLaunches"`
	TotalNotifications int64     `json:"totalNotifications"`
	TopApp             string    `json:"topApp"`
	TopAppPackage      string    `json:"topAppPackage"`
	TopAppDurationMS   int64     `json:"topAppDurationMS"`
	DateRange          DateRange `json:"dateRange"`
}

type DailyStat struct {
	Date              string `json:"date"`
	TotalDurationMS   int64  `json:"totalDurationMS"`
	UniqueApps        int    `json:"uniqueApps"`
	LaunchCount       int64  `json:"launchCount"`
	NotificationCount int64  `json:"notificationCount"`
	TopApp            string `json:"topApp"`
	TopAppDurationMS  int64  `json:"topAppDurationMS"`
}

type AppRanking struct {
	Rank              int     `json:"rank"`
	AppName           string  `json:"appName"`
	PackageID         string  `json:"packageID"`
	Category          string  `json:"category"`
	TotalDurationMS   int64   `json:"totalDurationMS"`
	LaunchCount       int64   `json:"launchCount"`
	NotificationCount int64   `json:"notificationCount"`
	Percentage        float64 `json:"percentage"`
	ActiveDays        int     `json:"activeDays"`
	AvgDailyDuration  float64 `json:"avgDailyDuration"`
}

type CategoryStat struct {
	Category          string   `json:"category"`
	AppCount          int      `json:"appCount"`
	TotalDurationMS   int64    `json:"totalDurationMS"`
	LaunchCount       int64    `json:"launchCount"`
	NotificationCount int64    `json:"notificationCount"`
	Percentage        float64  `json:"percentage"`
	Apps              []string `json:"apps"`
}

type HourlyStat struct {
	Hour        int   `json:"hour"`
	LaunchCount int64 `json:"launchCount"`
	UniqueApps  int   `json:"uniqueApps"`
}

// TrendPoint is one time bucket. Value is in hours.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type App struct {
	ID                 int64  `json:"id"`
	PackageID          string `json:"packageID"`
	AppName            string `json:"appName"`
	Category           string `json:"category"`
	FirstSeen          string `json:"firstSeen"`
	LastSeen           string `json:"lastSeen"`
	TotalDurationMS    int64  `json:"totalDurationMS"`
	TotalLaunches      int64  `json:"totalLaunches"`
	TotalNotifications int64  `json:"totalNotifications"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

type AppDailyPoint struct {
	Date     string `json:"date"`
	Duration int64  `json:"duration"`
	Launches int64  `json:"launches"`
}

type AppDetail struct {
	App        App             `json:"app"`
	DailyTrend []AppDailyPoint `json:"dailyTrend"`
}

// Device is a registered usage-data source.
type Device struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	DBPath         string `json:"dbPath"`
	DataFormat     string `json:"dataFormat"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
	LastSync       string `json:"lastSync,omitempty"`
	TotalRecords   int64  `json:"totalRecords"`
	DateRangeStart string `json:"dateRangeStart,omitempty"`
	DateRangeEnd   string `json:"dateRangeEnd,omitempty"`
	Metadata       string `json:"metadata,omitempty"`
}

type DeviceUsage struct {
	TotalDuration    int64   `json:"totalDuration"`
	AvgDailyDuration float64 `json:"avgDailyDuration"`
	TotalApps        int     `json:"totalApps"`
	ActiveDays       int     `json:"activeDays"`
	TopApp           string  `json:"topApp"`
}

type CombinedUsage struct {
	TotalDuration      int64   `json:"totalDuration"`
	AvgDailyDuration   float64 `json:"avgDailyDuration"`
	PhonePercentage    float64 `json:"phonePercentage"`
	ComputerPercentage float64 `json:"computerPercentage"`
}

type CrossDeviceComparison struct {
	Phone    DeviceUsage   `json:"phone"`
	Computer DeviceUsage   `json:"computer"`
	Total    CombinedUsage `json:"total"`
	Insights []string      `json:"insights"`
}

type UsagePattern struct {
	WorkDuration int64 `json:"workDuration"`
	LifeDuration int64 `json:"lifeDuration"`
}

type WorkLifeBalance struct {
	WorkDuration   int64        `json:"workDuration"`
	LifeDuration   int64        `json:"lifeDuration"`
	BalanceScore   float64      `json:"balanceScore"`
	WorkPercentage float64      `json:"workPercentage"`
	LifePercentage float64      `json:"lifePercentage"`
	Recommendation string       `json:"recommendation"`
	WeekdayPattern UsagePattern `json:"weekdayPattern"`
	WeekendPattern UsagePattern `json:"weekendPattern"`
	Insights       []string     `json:"insights"`
}

type DailyTotal struct {
	Date             string  `json:"date"`
	PhoneDuration    int64   `json:"phoneDuration"`
	ComputerDuration int64   `json:"computerDuration"`
	TotalDuration    int64   `json:"totalDuration"`
	TotalHours       float64 `json:"totalHours"`
}

type SwitchingPattern struct {
	Date              string `json:"date"`
	PhoneSessions     int    `json:"phoneSessions"`
	ComputerSessions  int    `json:"computerSessions"`
	EstimatedSwitches int    `json:"estimatedSwitches"`
	DominantDevice    string `json:"dominantDevice"`
}

type AppEcosystem struct {
	CrossPlatformApps  []string `json:"crossPlatformApps"`
	PhoneOnlyApps      []string `json:"phoneOnlyApps"`
	ComputerOnlyApps   []string `json:"computerOnlyApps"`
	TotalApps          int      `json:"totalApps"`
	CrossPlatformCount int      `json:"crossPlatformCount"`
	Insights           []string `json:"insights"`
}

type HourlyAllocation struct {
	Hour               int     `json:"hour"`
	PhoneDuration      int64   `json:"phoneDuration"`
	ComputerDuration   int64   `json:"computerDuration"`
	TotalDuration      int64   `json:"totalDuration"`
	PhonePercentage    float64 `json:"phonePercentage"`
	ComputerPercentage float64 `json:"computerPercentage"`
}

type UserProfile struct {
	DeviceDependency  string   `json:"deviceDependency"`
	WorkMode          string   `json:"workMode"`
	EntertainmentPref string   `json:"entertainmentPref"`
	ProductivityType  string   `json:"productivityType"`
	HealthStatus      string   `json:"healthStatus"`
	TotalScreentime   int64    `json:"totalScreentime"`
	Recommendations   []string `json:"recommendations"`
}
