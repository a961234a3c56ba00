package models

type FitDebug struct {
	StartTime       string    `json:"startTime,omitempty"`
	EndTime         string    `json:"endTime,omitempty"`
	BucketsReceived int       `json:"bucketsReceived"`
	HeartRateValues []float64 `json:"heartRateValues,omitempty"`
}

type FitResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Debug   *FitDebug   `json:"debug,omitempty"`
}

type DailySteps struct {
	Date  string `json:"date"`
	Steps int64  `json:"steps"`
}

type StepsData struct {
	TotalSteps int64        `json:"totalSteps"`
	DailySteps []DailySteps `json:"dailySteps"`
	Days       int          `json:"days"`
	Average    int64        `json:"average"`
}

type DailyHeartRate struct {
	Date       string `json:"date"`
	Average    int    `json:"average"`
	DataPoints int    `json:"dataPoints"`
}

type HeartRateData struct {
	Average         int              `json:"average"`
	DailyAverages   []DailyHeartRate `json:"dailyAverages"`
	TotalDataPoints int              `json:"totalDataPoints"`
	Days            int              `json:"days"`
}

type StepsTodayData struct {
	Steps int64 `json:"steps"`
}

type HeartPointsData struct {
	HeartPoints         int `json:"heartPoints"`
	AvgHeartRate        int `json:"avgHeartRate"`
	HeartRateDataPoints int `json:"heartRateDataPoints"`
}

type TargetStepsData struct {
	TargetSteps int `json:"targetSteps"`
	DailyTarget int `json:"dailyTarget"`
}

type FitOverviewData struct {
	Steps         int64     `json:"steps"`
	HeartRate     []float64 `json:"heartRate"`
	AvgHeartRate  int       `json:"avgHeartRate"`
	ActiveMinutes int64     `json:"activeMinutes"`
	Calories      int       `json:"calories"`
	DateRange     string    `json:"dateRange"`
	DaysWithData  int       `json:"daysWithData"`
}
