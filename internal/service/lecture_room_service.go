package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── lecture room errors ──

var (
	ErrLectureRoomNotFound = errors.New("lecture room not found")
	ErrRoomNameRequired    = errors.New("room name is required")
)

// weeklyPeakMinutes is five weekdays of 08:00-18:00.
const weeklyPeakMinutes = 5 * 600

// LectureRoomService 教室业务接口
type LectureRoomService interface {
	List(ctx context.Context) ([]model.LectureRoom, error)
	Get(ctx context.Context, id string) (*model.LectureRoom, error)
	Create(ctx context.Context, req *dto.LectureRoomRequest) (*model.LectureRoom, error)
	Update(ctx context.Context, id string, req *dto.LectureRoomRequest) (*model.LectureRoom, error)
	Delete(ctx context.Context, id string) error
	RoomNameExists(ctx context.Context, roomName string) (bool, error)
	Search(ctx context.Context, query string) ([]model.LectureRoom, error)
	Report(ctx context.Context) (*dto.RoomReport, error)
	// RefreshUtilization recomputes every room's utilization from the
	// schedules booked in it and returns the number of rooms written.
	RefreshUtilization(ctx context.Context) (int, error)
}

type lectureRoomService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewLectureRoomService 创建 LectureRoomService 实例
func NewLectureRoomService(repo *repository.Repository, logger *zap.Logger) LectureRoomService {
	return &lectureRoomService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── CRUD ──────────────────────

func (s *lectureRoomService) List(ctx context.Context) ([]model.LectureRoom, error) {
	rooms, err := s.repo.LectureRoom.List(ctx)
	if err != nil {
		s.logger.Error("list lecture rooms failed", zap.Error(err))
		return nil, err
	}
	return rooms, nil
}

func (s *lectureRoomService) Get(ctx context.Context, id string) (*model.LectureRoom, error) {
	room, err := s.repo.LectureRoom.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return room, nil
}

func (s *lectureRoomService) Create(ctx context.Context, req *dto.LectureRoomRequest) (*model.LectureRoom, error) {
	room := toLectureRoom(req)
	if room.RoomID == "" {
		room.RoomID = model.NewRoomID(s.now())
	}

	if err := s.repo.LectureRoom.Create(ctx, room); err != nil {
		s.logger.Error("create lecture room failed", zap.String("room_name", room.RoomName), zap.Error(err))
		return nil, err
	}
	return room, nil
}

// Update replaces the editable fields. Quantity keeps its stored value when
// the body omits it; utilization always does.
func (s *lectureRoomService) Update(ctx context.Context, id string, req *dto.LectureRoomRequest) (*model.LectureRoom, error) {
	existing, err := s.repo.LectureRoom.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}

	next := toLectureRoom(req)
	if req.Quantity == nil {
		next.Quantity = existing.Quantity
	}
	next.Utilization = existing.Utilization

	room, err := s.repo.LectureRoom.Replace(ctx, id, next)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return room, nil
}

func (s *lectureRoomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.LectureRoom.Delete(ctx, id); err != nil {
		return s.notFound(err, id)
	}
	return nil
}

func (s *lectureRoomService) RoomNameExists(ctx context.Context, roomName string) (bool, error) {
	if roomName == "" {
		return false, ErrRoomNameRequired
	}
	exists, err := s.repo.LectureRoom.ExistsByRoomName(ctx, roomName)
	if err != nil {
		s.logger.Error("check room name failed", zap.String("room_name", roomName), zap.Error(err))
		return false, err
	}
	return exists, nil
}

// ────────────────────── Search ──────────────────────

func (s *lectureRoomService) Search(ctx context.Context, query string) ([]model.LectureRoom, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return rooms, nil
	}

	q := strings.TrimSpace(strings.ToLower(query))
	result := make([]model.LectureRoom, 0, len(rooms))
	for i := range rooms {
		if matchRoom(&rooms[i], q) {
			result = append(result, rooms[i])
		}
	}
	return result, nil
}

var quantityQuery = regexp.MustCompile(`^(\w+):(\d+)$`)

// matchRoom applies the search rules in order. A comma separated query is
// decided by the equipment rule alone: every part must be listed.
func matchRoom(room *model.LectureRoom, q string) bool {
	if strings.Contains(strings.ToLower(room.RoomName), q) ||
		strings.Contains(strings.ToLower(room.Location), q) ||
		strings.Contains(strings.ToLower(room.RoomType), q) {
		return true
	}

	equipments := make(map[string]struct{}, len(room.AvailableEquipments))
	for _, e := range room.AvailableEquipments {
		equipments[strings.ToLower(e)] = struct{}{}
	}

	parts := strings.Split(q, ",")
	if len(parts) > 1 {
		for _, p := range parts {
			if _, ok := equipments[strings.TrimSpace(p)]; !ok {
				return false
			}
		}
		return true
	}
	if _, ok := equipments[q]; ok {
		return true
	}

	if strings.Contains(strings.ToLower(room.SeatingType), q) {
		return true
	}
	if q == "air conditioning" && room.AirConditioning {
		return true
	}
	if strings.Contains(strings.ToLower(room.Condition), q) {
		return true
	}

	if m := quantityQuery.FindStringSubmatch(q); m != nil {
		key := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		want, _ := strconv.ParseFloat(m[2], 64)
		if room.HasEquipment(key) && room.Quantity[key] == want {
			return true
		}
	}

	return strings.Contains(strings.ToLower(room.AddedBy), q)
}

// ────────────────────── Report ──────────────────────

func (s *lectureRoomService) Report(ctx context.Context) (*dto.RoomReport, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return buildRoomReport(rooms, s.now()), nil
}

func buildRoomReport(rooms []model.LectureRoom, now time.Time) *dto.RoomReport {
	conditions := map[string]int{
		model.ConditionExcellent:     0,
		model.ConditionGood:          0,
		model.ConditionNeedsToRepair: 0,
	}
	var total float64
	for _, r := range rooms {
		conditions[r.Condition]++
		total += r.Utilization
	}

	avg := 0.0
	if len(rooms) > 0 {
		avg = total / float64(len(rooms))
	}

	usage, _ := equipmentUsage(rooms)

	return &dto.RoomReport{
		Title:       "Lecture Room Utilization Summary Report",
		GeneratedOn: now.UTC(),
		Rooms:       rooms,
		Summary: dto.RoomReportSummary{
			TotalRooms:         len(rooms),
			AvgUtilization:     fixed2(avg),
			ConditionBreakdown: conditions,
			EquipmentUsage:     usage,
		},
	}
}

// equipmentUsage sums the counted equipment quantities across rooms and counts
// the rooms listing an audio system. The order slice lists the keys in
// presentation order.
func equipmentUsage(rooms []model.LectureRoom) (map[string]int, []string) {
	order := append(append([]string{}, model.CountedEquipment...), model.EquipmentAudioSystem)
	usage := make(map[string]int, len(order))
	for _, k := range order {
		usage[k] = 0
	}

	for _, r := range rooms {
		for _, k := range model.CountedEquipment {
			usage[k] += int(math.Max(0, math.Floor(r.Quantity[k])))
		}
		if r.HasEquipment(model.EquipmentAudioSystem) {
			usage[model.EquipmentAudioSystem]++
		}
	}
	return usage, order
}

// ────────────────────── Utilization ──────────────────────

func (s *lectureRoomService) RefreshUtilization(ctx context.Context) (int, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return 0, err
	}

	minutes := bookedMinutes(schedules)
	updated := 0
	for _, r := range rooms {
		u := utilizationPercent(minutes[r.RoomName])
		if u == r.Utilization {
			continue
		}
		if err := s.repo.LectureRoom.SetUtilization(ctx, r.ID, u); err != nil {
			return updated, fmt.Errorf("set utilization of %s: %w", r.RoomName, err)
		}
		updated++
	}
	return updated, nil
}

func bookedMinutes(schedules []model.Schedule) map[string]int {
	minutes := make(map[string]int)
	for _, sc := range schedules {
		minutes[sc.RoomName] += sc.Duration
	}
	return minutes
}

// utilizationPercent is the share of the weekly peak window, capped at 100 and
// rounded to two decimals.
func utilizationPercent(minutes int) float64 {
	u := float64(minutes) / weeklyPeakMinutes * 100
	if u > 100 {
		u = 100
	}
	return math.Round(u*100) / 100
}

// ── helpers ──

func (s *lectureRoomService) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrLectureRoomNotFound
	}
	s.logger.Error("lecture room store failed", zap.String("id", id), zap.Error(err))
	return err
}

func toLectureRoom(req *dto.LectureRoomRequest) *model.LectureRoom {
	room := &model.LectureRoom{
		RoomID:              req.RoomID,
		RoomName:            req.RoomName,
		Location:            req.Location,
		Capacity:            req.Capacity,
		RoomType:            req.RoomType,
		AvailableEquipments: req.AvailableEquipments,
		Quantity:            req.Quantity,
		SeatingType:         req.SeatingType,
		AirConditioning:     req.AirConditioning,
		PowerOutlets:        req.PowerOutlets,
		Condition:           req.Condition,
		Department:          req.Department,
		AddedBy:             req.AddedBy,
		Email:               req.Email,
	}
	if room.AvailableEquipments == nil {
		room.AvailableEquipments = []string{}
	}
	if room.Quantity == nil {
		room.Quantity = model.DefaultQuantity()
	}
	return room
}

// fixed2 formats v with two decimals.
func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
