package clinica

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	dal      *fakeDAL
	store    cache.Store
	notifier *fakeNotifier
	svcs     Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dal := newFakeDAL()
	dal.addPaciente(1, 5, "Ana", "ana@example.com")
	dal.addPaciente(2, 5, "Bruno", "")
	dal.addPaciente(3, 7, "Carla", "carla@example.com")

	store := cache.NewMemory(0, nil)
	t.Cleanup(func() { _ = store.Close() })

	n := &fakeNotifier{}
	svcs := NewServices(Deps{
		DAL:         dal,
		Memo:        cache.NewMemo(store),
		Invalidator: cache.NewInvalidator(store),
		Notifier:    n,
		ListTTL:     5 * time.Minute,
		StatsTTL:    10 * time.Minute,
		Now:         func() time.Time { return fixedNow },
	})
	return &fixture{dal: dal, store: store, notifier: n, svcs: svcs}
}

func (f *fixture) has(key string) bool {
	_, ok := f.store.Get(context.Background(), key)
	return ok
}

func TestPacientes_ListIsCachedUnderConventionalKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svcs.Pacientes.List(ctx, 5, dto.ListPacientesQuery{})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 2, first.Total)
	assert.True(t, f.has("pacientes_5_all_all_name"))

	second, err := f.svcs.Pacientes.List(ctx, 5, dto.ListPacientesQuery{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, 1, f.dal.listCalls)
}

func TestPacientes_ListRejectsUnknownFilter(t *testing.T) {
	f := newFixture(t)
	_, err := f.svcs.Pacientes.List(context.Background(), 5, dto.ListPacientesQuery{Sort: "edad"})
	assert.True(t, repository.IsInvalidInput(err))
}

func TestPacientes_CreateInvalidatesProfesionalScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Pacientes.List(ctx, 5, dto.ListPacientesQuery{})
	require.NoError(t, err)
	_, err = f.svcs.Pacientes.List(ctx, 7, dto.ListPacientesQuery{})
	require.NoError(t, err)

	p, err := f.svcs.Pacientes.Create(ctx, 5, dto.CreatePacienteRequest{Nombre: " Diego ", FechaNacimiento: "1990-05-01"})
	require.NoError(t, err)
	assert.Equal(t, "Diego", p.Nombre)
	assert.Equal(t, "1990-05-01", p.FechaNacimiento)

	assert.False(t, f.has("pacientes_5_all_all_name"))
	assert.True(t, f.has("pacientes_7_all_all_name"), "otro profesional no se toca")

	list, err := f.svcs.Pacientes.List(ctx, 5, dto.ListPacientesQuery{})
	require.NoError(t, err)
	assert.False(t, list.Cached)
	assert.Equal(t, 3, list.Total)
}

func TestPacientes_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Pacientes.Create(ctx, 5, dto.CreatePacienteRequest{Nombre: "  "})
	assert.True(t, repository.IsInvalidInput(err))

	_, err = f.svcs.Pacientes.Create(ctx, 5, dto.CreatePacienteRequest{Nombre: "X", Email: "sin-arroba"})
	assert.True(t, repository.IsInvalidInput(err))

	_, err = f.svcs.Pacientes.Create(ctx, 5, dto.CreatePacienteRequest{Nombre: "X", FechaNacimiento: "01/05/1990"})
	assert.True(t, repository.IsInvalidInput(err))
}

func TestPacientes_UpdateInvalidatesPacienteScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Pacientes.Resumen(ctx, 1)
	require.NoError(t, err)
	require.True(t, f.has("paciente_1_resumen"))

	activo := false
	p, err := f.svcs.Pacientes.Update(ctx, 1, dto.UpdatePacienteRequest{Activo: &activo})
	require.NoError(t, err)
	assert.False(t, p.Activo)
	assert.False(t, f.has("paciente_1_resumen"))

	_, err = f.svcs.Pacientes.Update(ctx, 999, dto.UpdatePacienteRequest{Activo: &activo})
	assert.True(t, repository.IsNotFound(err))
}

func TestPacientes_Resumen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	peso, talla := 70.0, 175.0
	_, err := f.svcs.Mediciones.Create(ctx, 1, dto.CreateMedicionRequest{PesoKg: &peso, TallaCm: &talla})
	require.NoError(t, err)
	_, err = f.svcs.Consultas.Create(ctx, 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow.Add(48 * time.Hour)})
	require.NoError(t, err)

	r, err := f.svcs.Pacientes.Resumen(ctx, 1)
	require.NoError(t, err)
	assert.False(t, r.Cached)
	require.NotNil(t, r.UltimaMedicion)
	require.NotNil(t, r.UltimaMedicion.IMC)
	assert.InDelta(t, 22.86, *r.UltimaMedicion.IMC, 0.001)
	require.NotNil(t, r.ProximaConsulta)
	assert.Nil(t, r.PlanActivo)
	assert.Equal(t, 1, r.Conteo.Mediciones)
	assert.Equal(t, 1, r.Conteo.Consultas)

	r, err = f.svcs.Pacientes.Resumen(ctx, 1)
	require.NoError(t, err)
	assert.True(t, r.Cached)

	_, err = f.svcs.Pacientes.Resumen(ctx, 999)
	assert.True(t, repository.IsNotFound(err))
	assert.False(t, f.has("paciente_999_resumen"), "los errores no se cachean")
}

func TestConsultas_CreateNotifiesAndInvalidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Consultas.List(ctx, 5, dto.ListConsultasQuery{})
	require.NoError(t, err)
	_, err = f.svcs.Estadisticas.Profesional(ctx, 5)
	require.NoError(t, err)
	require.True(t, f.has("consultas_5_all_all_all"))
	require.True(t, f.has("stats_5_dashboard"))

	c, err := f.svcs.Consultas.Create(ctx, 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "programada", c.Estado)
	assert.Equal(t, 30, c.DuracionMin)
	assert.Equal(t, "Ana", c.PacienteNombre)
	assert.Equal(t, []int64{c.ID}, f.notifier.programada)

	assert.False(t, f.has("consultas_5_all_all_all"))
	assert.False(t, f.has("stats_5_dashboard"))
}

func TestConsultas_CreateRejectsForeignPaciente(t *testing.T) {
	f := newFixture(t)
	_, err := f.svcs.Consultas.Create(context.Background(), 5, dto.CreateConsultaRequest{PacienteID: 3, FechaHora: fixedNow})
	assert.True(t, repository.IsInvalidInput(err))
	assert.Empty(t, f.notifier.programada)
}

func TestConsultas_NotificationFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	_, err := f.svcs.Consultas.Create(context.Background(), 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow})
	assert.NoError(t, err)
}

func TestConsultas_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svcs.Consultas.Create(ctx, 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow})
	require.NoError(t, err)

	_, err = f.svcs.Estadisticas.Profesional(ctx, 5)
	require.NoError(t, err)

	done, err := f.svcs.Consultas.Completar(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "completada", done.Estado)
	assert.False(t, f.has("stats_5_dashboard"))

	// completada es terminal
	_, err = f.svcs.Consultas.Cancelar(ctx, c.ID)
	assert.True(t, repository.IsConflict(err))
	_, err = f.svcs.Consultas.MarcarAusente(ctx, c.ID)
	assert.True(t, repository.IsConflict(err))
	assert.Empty(t, f.notifier.cancelada)

	_, err = f.svcs.Consultas.Completar(ctx, 999)
	assert.True(t, repository.IsNotFound(err))
}

func TestConsultas_CancelarNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svcs.Consultas.Create(ctx, 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow})
	require.NoError(t, err)

	out, err := f.svcs.Consultas.Cancelar(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelada", out.Estado)
	assert.Equal(t, []int64{c.ID}, f.notifier.cancelada)
}

func TestConsultas_UpdateReprogramOnlyWhenProgramada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svcs.Consultas.Create(ctx, 5, dto.CreateConsultaRequest{PacienteID: 1, FechaHora: fixedNow})
	require.NoError(t, err)
	_, err = f.svcs.Consultas.MarcarAusente(ctx, c.ID)
	require.NoError(t, err)

	later := fixedNow.Add(24 * time.Hour)
	_, err = f.svcs.Consultas.Update(ctx, c.ID, dto.UpdateConsultaRequest{FechaHora: &later})
	assert.True(t, repository.IsConflict(err))

	notas := "no se presentó"
	out, err := f.svcs.Consultas.Update(ctx, c.ID, dto.UpdateConsultaRequest{Notas: &notas})
	require.NoError(t, err)
	assert.Equal(t, notas, out.Notas)
}

func TestConsultas_ListValidatesQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Consultas.List(ctx, 5, dto.ListConsultasQuery{Estado: "perdida"})
	assert.True(t, repository.IsInvalidInput(err))

	desde := fixedNow
	hasta := fixedNow.Add(-24 * time.Hour)
	_, err = f.svcs.Consultas.List(ctx, 5, dto.ListConsultasQuery{Desde: &desde, Hasta: &hasta})
	assert.True(t, repository.IsInvalidInput(err))

	hasta = fixedNow.Add(24 * time.Hour)
	_, err = f.svcs.Consultas.List(ctx, 5, dto.ListConsultasQuery{Estado: "Programada", Desde: &desde, Hasta: &hasta})
	require.NoError(t, err)
	assert.True(t, f.has("consultas_5_programada_2026-03-10_2026-03-11"))
}

func TestMediciones_CreateComputesIMCAndInvalidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Mediciones.List(ctx, 1)
	require.NoError(t, err)
	_, err = f.svcs.Pacientes.List(ctx, 5, dto.ListPacientesQuery{})
	require.NoError(t, err)

	peso, talla := 80.0, 180.0
	m, err := f.svcs.Mediciones.Create(ctx, 1, dto.CreateMedicionRequest{PesoKg: &peso, TallaCm: &talla})
	require.NoError(t, err)
	require.NotNil(t, m.IMC)
	assert.InDelta(t, 24.69, *m.IMC, 0.001)
	assert.Equal(t, "2026-03-10", m.Fecha)

	assert.False(t, f.has("paciente_1_mediciones"))
	assert.False(t, f.has("pacientes_5_all_all_name"))

	list, err := f.svcs.Mediciones.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestMediciones_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Mediciones.Create(ctx, 1, dto.CreateMedicionRequest{})
	assert.True(t, repository.IsInvalidInput(err))

	neg := -3.0
	_, err = f.svcs.Mediciones.Create(ctx, 1, dto.CreateMedicionRequest{PesoKg: &neg})
	assert.True(t, repository.IsInvalidInput(err))

	peso := 60.0
	_, err = f.svcs.Mediciones.Create(ctx, 999, dto.CreateMedicionRequest{PesoKg: &peso})
	assert.True(t, repository.IsNotFound(err))
}

func TestComidas_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Comidas.Create(ctx, 1, dto.CreateComidaRequest{Tipo: "brunch", Descripcion: "x"})
	assert.True(t, repository.IsInvalidInput(err))

	_, err = f.svcs.Comidas.List(ctx, 1, nil)
	require.NoError(t, err)
	require.True(t, f.has("paciente_1_comidas_all"))

	c, err := f.svcs.Comidas.Create(ctx, 1, dto.CreateComidaRequest{Tipo: "Almuerzo", Descripcion: "ensalada", Fecha: "2026-03-09"})
	require.NoError(t, err)
	assert.Equal(t, "almuerzo", c.Tipo)
	assert.False(t, f.has("paciente_1_comidas_all"))

	list, err := f.svcs.Comidas.List(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.False(t, list.Cached)
}

func TestPlanes_CreateDeactivatesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svcs.Planes.Create(ctx, 1, dto.CreatePlanRequest{Nombre: "Inicial"})
	require.NoError(t, err)
	_, err = f.svcs.Planes.List(ctx, 1)
	require.NoError(t, err)

	p, err := f.svcs.Planes.Create(ctx, 1, dto.CreatePlanRequest{Nombre: "Mantenimiento", FechaInicio: "2026-04-01", FechaFin: "2026-06-30"})
	require.NoError(t, err)
	assert.True(t, p.Activo)
	assert.Equal(t, "2026-06-30", p.FechaFin)

	list, err := f.svcs.Planes.List(ctx, 1)
	require.NoError(t, err)
	assert.False(t, list.Cached)
	require.Len(t, list.Items, 2)
	assert.False(t, list.Items[0].Activo)

	_, err = f.svcs.Planes.Create(ctx, 1, dto.CreatePlanRequest{Nombre: "X", FechaInicio: "2026-04-01", FechaFin: "2026-03-01"})
	assert.True(t, repository.IsInvalidInput(err))
}

func TestEstadisticas_CachedWithStatsTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st, err := f.svcs.Estadisticas.Profesional(ctx, 5)
	require.NoError(t, err)
	assert.False(t, st.Cached)
	assert.Equal(t, 2, st.TotalPacientes)

	st, err = f.svcs.Estadisticas.Profesional(ctx, 5)
	require.NoError(t, err)
	assert.True(t, st.Cached)
	assert.Equal(t, 1, f.dal.statsCalls)
}
