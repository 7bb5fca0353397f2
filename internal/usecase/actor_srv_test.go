package usecase

import (
	"movies-api/internal/data/repository/mock"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"

	"github.com/google/uuid"
)

func (s *ServiceTestSuite) TestActorCreateAndGet() {
	created, err := s.actors.Create(s.ctx, &request.ActorRequest{FirstName: "Meryl", LastName: "Streep", BirthYear: 1949})
	s.Require().NoError(err)
	s.Equal("Meryl Streep", created.FullName)
	s.Equal(1, created.Version)
	s.Empty(created.Movies)

	got, err := s.actors.Get(s.ctx, uuid.MustParse(created.ID))
	s.Require().NoError(err)
	s.Equal("Streep", got.LastName)

	_, err = s.actors.Get(s.ctx, uuid.New())
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestActorCreateValidation() {
	_, err := s.actors.Create(s.ctx, &request.ActorRequest{FirstName: "", LastName: "Streep", BirthYear: 1700})
	s.requireKind(KindValidation, err)
}

func (s *ServiceTestSuite) TestActorGetAllOrderedByName() {
	s.seedActor("Al", "Pacino")
	s.seedActor("Robert", "De Niro")
	s.seedActor("Val", "Kilmer")

	page, err := s.actors.GetAll(s.ctx, request.PaginatedRequest{Page: 1, PageSize: 2})
	s.Require().NoError(err)
	s.Require().Len(page.Data, 2)
	s.Equal("De Niro", page.Data[0].LastName)
	s.Equal("Kilmer", page.Data[1].LastName)
	s.EqualValues(3, page.Pagination.TotalItemCount)
	s.Equal(2, page.Pagination.TotalPages)
}

func (s *ServiceTestSuite) TestActorUpdate() {
	actor := s.seedActor("Al", "Pacino")

	req := &request.ActorRequest{FirstName: "Alfredo", LastName: "Pacino", BirthYear: 1940}
	s.Require().NoError(s.actors.Update(s.ctx, actor.ID, req))

	got, err := s.actors.Get(s.ctx, actor.ID)
	s.Require().NoError(err)
	s.Equal("Alfredo Pacino", got.FullName)
	s.Equal(2, got.Version)

	req.Version = intPtr(1)
	err = s.actors.Update(s.ctx, actor.ID, req)
	s.requireKind(KindConcurrencyConflict, err)

	err = s.actors.Update(s.ctx, uuid.New(), req)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestActorDeleteRemovesCast() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")
	s.store.PutCast(movie.ID, actor.ID, "Vincent Hanna")

	s.Require().NoError(s.actors.Delete(s.ctx, actor.ID))
	s.Zero(s.store.CountCast(movie.ID))

	ok, err := s.movies.Any(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.True(ok)

	err = s.actors.Delete(s.ctx, actor.ID)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestActorDeleteConcurrentlyRemoved() {
	actor := s.seedActor("Al", "Pacino")
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableActors && op == mock.OpDelete {
			s.store.DeleteRow(mock.TableActors, id)
		}
	}

	err := s.actors.Delete(s.ctx, actor.ID)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestAddActorToMovie() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")
	req := &request.CastRequest{ActorID: actor.ID.String(), Role: "Vincent Hanna"}

	result, err := s.actors.AddActorToMovie(s.ctx, movie.ID, req)
	s.Require().NoError(err)
	s.Equal(response.CastAdded, result)

	ok, err := s.actors.IsActorInMovie(s.ctx, movie.ID, actor.ID)
	s.Require().NoError(err)
	s.True(ok)

	result, err = s.actors.AddActorToMovie(s.ctx, movie.ID, req)
	s.Require().NoError(err)
	s.Equal(response.CastAlreadyExists, result)
	s.Equal(1, s.store.CountCast(movie.ID))

	got, err := s.actors.Get(s.ctx, actor.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Movies, 1)
	s.Equal("Heat", got.Movies[0].Title)
	s.Equal("Vincent Hanna", got.Movies[0].Role)
}

func (s *ServiceTestSuite) TestAddActorToMovieRace() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableMovieActors && op == mock.OpCreate {
			s.store.PutCast(id, actor.ID, "Vincent Hanna")
		}
	}

	result, err := s.actors.AddActorToMovie(s.ctx, movie.ID, &request.CastRequest{ActorID: actor.ID.String(), Role: "Vincent Hanna"})
	s.Require().NoError(err)
	s.Equal(response.CastAlreadyExists, result)
	s.Equal(1, s.store.CountCast(movie.ID))
}

func (s *ServiceTestSuite) TestAddActorToMovieMissingReferences() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")

	_, err := s.actors.AddActorToMovie(s.ctx, uuid.New(), &request.CastRequest{ActorID: actor.ID.String(), Role: "Lead"})
	s.requireKind(KindNotFound, err)

	_, err = s.actors.AddActorToMovie(s.ctx, movie.ID, &request.CastRequest{ActorID: uuid.NewString(), Role: "Lead"})
	s.requireKind(KindNotFound, err)

	_, err = s.actors.AddActorToMovie(s.ctx, movie.ID, &request.CastRequest{ActorID: "not-a-uuid", Role: "Lead"})
	s.requireKind(KindValidation, err)
}

func (s *ServiceTestSuite) TestAddActorToDocumentaryLimit() {
	documentary := s.seedGenre("Documentary")
	drama := s.seedGenre("Drama")
	doc := s.seedMovie("Planet Earth", 2006, documentary, nil)
	heat := s.seedMovie("Heat", 1995, drama, nil)
	s.seedCast(doc, MaxDocumentaryActors)
	s.seedCast(heat, MaxDocumentaryActors)
	actor := s.seedActor("David", "Attenborough")
	req := &request.CastRequest{ActorID: actor.ID.String(), Role: "Narrator"}

	_, err := s.actors.AddActorToMovie(s.ctx, doc.ID, req)
	s.requireKind(KindValidation, err)
	s.Equal(MaxDocumentaryActors, s.store.CountCast(doc.ID))

	result, err := s.actors.AddActorToMovie(s.ctx, heat.ID, req)
	s.Require().NoError(err)
	s.Equal(response.CastAdded, result)
	s.Equal(MaxDocumentaryActors+1, s.store.CountCast(heat.ID))
}

func (s *ServiceTestSuite) TestRemoveActorFromMovie() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")
	s.store.PutCast(movie.ID, actor.ID, "Vincent Hanna")

	s.Require().NoError(s.actors.RemoveActorFromMovie(s.ctx, movie.ID, actor.ID))
	s.Zero(s.store.CountCast(movie.ID))

	err := s.actors.RemoveActorFromMovie(s.ctx, movie.ID, actor.ID)
	s.requireKind(KindNotFound, err)
}
