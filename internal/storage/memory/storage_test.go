package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mwillard/gameroom/internal/dependencies/mocks"
	"github.com/mwillard/gameroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) room(code string) model.Room {
	return model.Room{
		Code:   model.RoomCode(code),
		GameID: "guess",
		HostID: "host-1",
		Players: []model.Player{
			{ID: "host-1", Name: "Alice", Role: model.RoleHost},
		},
		CreatedAt: s.clock.Now(),
	}
}

// Create tests

func (s *StorageSuite) TestCreateRoomStartsAtVersionOne() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	s.Equal(int64(1), record.Version)
	s.Equal(model.RoomCode("ROOM01"), record.Room.Code)
	s.Equal(s.clock.Now(), record.CreatedAt)
	s.Equal(s.clock.Now(), record.UpdatedAt)
}

func (s *StorageSuite) TestCreateRoomRejectsDuplicateCode() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	_, err = s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.ErrorIs(err, model.ErrRoomExists)
}

// Get tests

func (s *StorageSuite) TestGetRoom() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), model.GameState(`{"stage":"lobby"}`))
	s.Require().NoError(err)

	record, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ROOM01"), record.Room.Code)
	s.JSONEq(`{"stage":"lobby"}`, string(record.GameState))
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetRoomReturnsCopy() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	record, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	record.Room.Players[0].Name = "Mallory"

	fresh, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal("Alice", fresh.Room.Players[0].Name)
}

// Update (CAS) tests

func (s *StorageSuite) TestUpdateRoomIncrementsVersion() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	newVersion, err := s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, model.GameState(`{"n":1}`), 1)
	s.Require().NoError(err)
	s.Equal(int64(2), newVersion)

	updated, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(int64(2), updated.Version)
	s.JSONEq(`{"n":1}`, string(updated.GameState))
}

func (s *StorageSuite) TestUpdateRoomVersionMonotonicity() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	for i := 0; i < 10; i++ {
		newVersion, err := s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, nil, int64(1+i))
		s.Require().NoError(err)
		s.Equal(int64(2+i), newVersion)
	}
}

func (s *StorageSuite) TestUpdateRoomConflictOnStaleVersion() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	_, err = s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, nil, 1)
	s.Require().NoError(err)

	// Second writer still holds version 1
	_, err = s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, nil, 1)
	s.ErrorIs(err, model.ErrVersionConflict)

	var conflict *model.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(int64(2), conflict.CurrentVersion)
}

func (s *StorageSuite) TestUpdateRoomConflictOnAbsentRoom() {
	_, err := s.storage.UpdateRoom(s.ctx, "NOPE", s.room("NOPE"), nil, 1)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StorageSuite) TestUpdateRoomConflictDoesNotWrite() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), model.GameState(`{"n":0}`))
	s.Require().NoError(err)

	_, err = s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, model.GameState(`{"n":99}`), 42)
	s.ErrorIs(err, model.ErrVersionConflict)

	fresh, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(int64(1), fresh.Version)
	s.JSONEq(`{"n":0}`, string(fresh.GameState))
}

func (s *StorageSuite) TestUpdateRoomUpdatesTimestamp() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	_, err = s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, nil, 1)
	s.Require().NoError(err)

	updated, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), updated.UpdatedAt)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))
}

// Exists / Delete / List tests

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	exists, err = s.storage.RoomExists(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	deleted, err := s.storage.DeleteRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.storage.DeleteRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *StorageSuite) TestListRooms() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)
	_, err = s.storage.CreateRoom(s.ctx, s.room("ROOM02"), nil)
	s.Require().NoError(err)

	records, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)
}

// Purge tests

func (s *StorageSuite) TestPurgeRoomsOlderThan() {
	_, err := s.storage.CreateRoom(s.ctx, s.room("OLD001"), nil)
	s.Require().NoError(err)

	s.clock.Advance(48 * time.Hour)

	_, err = s.storage.CreateRoom(s.ctx, s.room("NEW001"), nil)
	s.Require().NoError(err)

	count, err := s.storage.PurgeRoomsOlderThan(s.ctx, 24*time.Hour)
	s.Require().NoError(err)
	s.Equal(1, count)

	_, err = s.storage.GetRoom(s.ctx, "OLD001")
	s.ErrorIs(err, model.ErrRoomNotFound)

	_, err = s.storage.GetRoom(s.ctx, "NEW001")
	s.NoError(err)
}

func (s *StorageSuite) TestPurgeKeepsRecentlyUpdatedRooms() {
	record, err := s.storage.CreateRoom(s.ctx, s.room("ROOM01"), nil)
	s.Require().NoError(err)

	s.clock.Advance(20 * time.Hour)

	// Touch the room; UpdatedAt moves forward
	_, err = s.storage.UpdateRoom(s.ctx, "ROOM01", record.Room, nil, 1)
	s.Require().NoError(err)

	s.clock.Advance(20 * time.Hour)

	count, err := s.storage.PurgeRoomsOlderThan(s.ctx, 24*time.Hour)
	s.Require().NoError(err)
	s.Equal(0, count)
}
