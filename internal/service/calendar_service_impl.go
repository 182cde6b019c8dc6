package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/alexanderramin/timesheets/internal/calendar"
)

type calendarService struct {
	workdays calendar.WeekdaySet
	now      func() time.Time
	observer UseCaseObserver
}

func NewCalendarService(workdays calendar.WeekdaySet, observers ...UseCaseObserver) CalendarService {
	return &calendarService{
		workdays: workdays,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) WorkdayRange(ctx context.Context, req app.RangeRequest) (rng calendar.WorkdayRange, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "workday-range", time.Now(), fields, &err)

	rng, err = calendar.Compute(req.Spec(s.now()), s.workdays)
	if err != nil {
		return calendar.WorkdayRange{}, err
	}
	fields["start"] = calendar.FormatDate(rng.Start)
	fields["end"] = calendar.FormatDate(rng.End)
	fields["workdays"] = len(rng.Workdays)
	return rng, nil
}
