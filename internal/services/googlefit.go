package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"

	"mindmate-backend/internal/models"
)

const (
	stepsDataType         = "com.google.step_count.delta"
	heartRateDataType     = "com.google.heart_rate.bpm"
	activeMinutesDataType = "com.google.active_minutes"
	caloriesDataType      = "com.google.calories.expended"

	dayMillis          = int64(24 * time.Hour / time.Millisecond)
	DefaultTargetSteps = 10000
)

type aggregateFunc func(ctx context.Context, accessToken string, req *fitness.AggregateRequest) (*fitness.AggregateResponse, error)

// GoogleFitService reads aggregated activity data with a caller-supplied
// OAuth access token.
type GoogleFitService struct {
	oauth     *oauth2.Config
	aggregate aggregateFunc
	now       func() time.Time
}

func NewGoogleFitService(clientID, clientSecret, redirectURI string) *GoogleFitService {
	s := &GoogleFitService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     endpoints.Google,
			Scopes: []string{
				fitness.FitnessActivityReadScope,
				fitness.FitnessHeartRateReadScope,
			},
		},
		now: time.Now,
	}
	s.aggregate = s.aggregateWithToken
	return s
}

func (s *GoogleFitService) aggregateWithToken(ctx context.Context, accessToken string, req *fitness.AggregateRequest) (*fitness.AggregateResponse, error) {
	client := s.oauth.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	svc, err := fitness.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness service: %w", err)
	}
	resp, err := svc.Users.Dataset.Aggregate("me", req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fitness aggregate: %w", err)
	}
	return resp, nil
}

func (s *GoogleFitService) fetch(ctx context.Context, accessToken string, start, end time.Time, dataTypes ...string) (*fitness.AggregateResponse, error) {
	req := &fitness.AggregateRequest{
		BucketByTime:    &fitness.BucketByTime{DurationMillis: dayMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	}
	for _, dt := range dataTypes {
		req.AggregateBy = append(req.AggregateBy, &fitness.AggregateBy{DataTypeName: dt})
	}
	return s.aggregate(ctx, accessToken, req)
}

func (s *GoogleFitService) window(days int) (time.Time, time.Time) {
	end := s.now()
	return end.Add(-time.Duration(days) * 24 * time.Hour), end
}

// Steps returns daily step counts for the last N days.
func (s *GoogleFitService) Steps(ctx context.Context, accessToken string, days int) (*models.FitResponse, error) {
	start, end := s.window(days)
	log.Printf("[STEPS] Fetching %d day(s) from %s to %s", days, start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.fetch(ctx, accessToken, start, end, stepsDataType)
	if err != nil {
		return nil, err
	}

	data := models.StepsData{Days: days, DailySteps: []models.DailySteps{}}
	for _, bucket := range resp.Bucket {
		var daySteps int64
		forEachPoint(bucket, func(p *fitness.DataPoint) {
			daySteps += intValue(p)
		})
		data.DailySteps = append(data.DailySteps, models.DailySteps{Date: bucketDate(bucket), Steps: daySteps})
		data.TotalSteps += daySteps
	}
	data.Average = int64(math.Round(float64(data.TotalSteps) / float64(days)))

	return &models.FitResponse{
		Success: true,
		Data:    data,
		Debug:   &models.FitDebug{BucketsReceived: len(resp.Bucket)},
	}, nil
}

// HeartRate returns the overall and per-day average heart rate.
func (s *GoogleFitService) HeartRate(ctx context.Context, accessToken string, days int) (*models.FitResponse, error) {
	start, end := s.window(days)
	log.Printf("[HEART RATE] Fetching %d day(s) from %s to %s", days, start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.fetch(ctx, accessToken, start, end, heartRateDataType)
	if err != nil {
		return nil, err
	}

	var all []float64
	data := models.HeartRateData{Days: days, DailyAverages: []models.DailyHeartRate{}}
	for _, bucket := range resp.Bucket {
		var day []float64
		forEachPoint(bucket, func(p *fitness.DataPoint) {
			if hr := fpValue(p); hr > 0 {
				day = append(day, hr)
			}
		})
		if len(day) > 0 {
			data.DailyAverages = append(data.DailyAverages, models.DailyHeartRate{
				Date:       bucketDate(bucket),
				Average:    roundedMean(day),
				DataPoints: len(day),
			})
		}
		all = append(all, day...)
	}
	data.Average = roundedMean(all)
	data.TotalDataPoints = len(all)

	return &models.FitResponse{
		Success: true,
		Data:    data,
		Debug:   &models.FitDebug{BucketsReceived: len(resp.Bucket)},
	}, nil
}

// StepsToday sums steps between local midnight and the next midnight.
func (s *GoogleFitService) StepsToday(ctx context.Context, accessToken string) (*models.FitResponse, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	log.Printf("[STEPS TODAY] Fetching from %s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.fetch(ctx, accessToken, start, end, stepsDataType)
	if err != nil {
		return nil, err
	}

	var steps int64
	for _, bucket := range resp.Bucket {
		forEachPoint(bucket, func(p *fitness.DataPoint) {
			steps += intValue(p)
		})
	}

	return &models.FitResponse{
		Success: true,
		Data:    models.StepsTodayData{Steps: steps},
		Debug: &models.FitDebug{
			StartTime:       isoMillis(start),
			EndTime:         isoMillis(end),
			BucketsReceived: len(resp.Bucket),
		},
	}, nil
}

// HeartPoints approximates heart points as the mean heart rate over the window.
func (s *GoogleFitService) HeartPoints(ctx context.Context, accessToken string, days int) (*models.FitResponse, error) {
	start, end := s.window(days)
	log.Printf("[HEART POINTS] Fetching from %s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.fetch(ctx, accessToken, start, end, heartRateDataType)
	if err != nil {
		return nil, err
	}

	rates := []float64{}
	for _, bucket := range resp.Bucket {
		forEachPoint(bucket, func(p *fitness.DataPoint) {
			if hr := fpValue(p); hr > 0 {
				rates = append(rates, hr)
			}
		})
	}
	avg := roundedMean(rates)

	return &models.FitResponse{
		Success: true,
		Data: models.HeartPointsData{
			HeartPoints:         avg,
			AvgHeartRate:        avg,
			HeartRateDataPoints: len(rates),
		},
		Debug: &models.FitDebug{
			StartTime:       isoMillis(start),
			EndTime:         isoMillis(end),
			BucketsReceived: len(resp.Bucket),
			HeartRateValues: rates,
		},
	}, nil
}

// TargetSteps is the standard daily step goal.
func (s *GoogleFitService) TargetSteps() *models.FitResponse {
	return &models.FitResponse{
		Success: true,
		Data: models.TargetStepsData{
			TargetSteps: DefaultTargetSteps,
			DailyTarget: DefaultTargetSteps,
		},
	}
}

// Overview combines steps, heart rate, active minutes and calories.
func (s *GoogleFitService) Overview(ctx context.Context, accessToken string, days int) (*models.FitResponse, error) {
	start, end := s.window(days)
	log.Printf("[DATA] Fetching from %s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	resp, err := s.fetch(ctx, accessToken, start, end,
		stepsDataType, heartRateDataType, activeMinutesDataType, caloriesDataType)
	if err != nil {
		return nil, err
	}

	data := models.FitOverviewData{HeartRate: []float64{}}
	var calories float64
	var dates []string
	for _, bucket := range resp.Bucket {
		dates = append(dates, bucketDate(bucket))
		forEachPoint(bucket, func(p *fitness.DataPoint) {
			switch {
			case p.DataTypeName == stepsDataType:
				data.Steps += intValue(p)
			case strings.HasPrefix(p.DataTypeName, "com.google.heart_rate"):
				if hr := fpValue(p); hr > 0 {
					data.HeartRate = append(data.HeartRate, hr)
				}
			case p.DataTypeName == activeMinutesDataType:
				data.ActiveMinutes += intValue(p)
			case p.DataTypeName == caloriesDataType:
				calories += fpValue(p)
			}
		})
	}
	data.AvgHeartRate = roundedMean(data.HeartRate)
	data.Calories = int(math.Round(calories))
	data.DaysWithData = len(dates)
	if len(dates) > 0 {
		data.DateRange = dates[0] + " to " + dates[len(dates)-1]
	}

	return &models.FitResponse{
		Success: true,
		Data:    data,
		Debug: &models.FitDebug{
			StartTime:       isoMillis(start),
			EndTime:         isoMillis(end),
			BucketsReceived: len(resp.Bucket),
		},
	}, nil
}

func forEachPoint(bucket *fitness.AggregateBucket, fn func(p *fitness.DataPoint)) {
	if bucket == nil {
		return
	}
	for _, ds := range bucket.Dataset {
		if ds == nil {
			continue
		}
		for _, p := range ds.Point {
			if p != nil {
				fn(p)
			}
		}
	}
}

func intValue(p *fitness.DataPoint) int64 {
	if len(p.Value) == 0 || p.Value[0] == nil {
		return 0
	}
	return p.Value[0].IntVal
}

func fpValue(p *fitness.DataPoint) float64 {
	if len(p.Value) == 0 || p.Value[0] == nil {
		return 0
	}
	return p.Value[0].FpVal
}

func bucketDate(bucket *fitness.AggregateBucket) string {
	return time.UnixMilli(bucket.StartTimeMillis).UTC().Format("2006-01-02")
}

func roundedMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}

func isoMillis(t time.Time) string {
	return t.UTC().Format(models.TimestampLayout)
}
