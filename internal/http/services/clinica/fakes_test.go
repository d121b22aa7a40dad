package clinica

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

// fakeDAL implementa repository.DataAccess en memoria y cuenta las lecturas
// para verificar los hits de cache.
type fakeDAL struct {
	mu         sync.Mutex
	pacientes  map[int64]*repository.Paciente
	consultas  map[int64]*repository.Consulta
	mediciones []repository.Medicion
	comidas    []repository.RegistroComida
	planes     []repository.PlanDieta
	nextID     int64
	listCalls  int
	statsCalls int
}

func newFakeDAL() *fakeDAL {
	return &fakeDAL{
		pacientes: map[int64]*repository.Paciente{},
		consultas: map[int64]*repository.Consulta{},
		nextID:    100,
	}
}

func (f *fakeDAL) id() int64 { f.nextID++; return f.nextID }

func (f *fakeDAL) addPaciente(id, profID int64, nombre, email string) {
	f.pacientes[id] = &repository.Paciente{ID: id, ProfesionalID: profID, Nombre: nombre, Email: email, Activo: true}
}

func (f *fakeDAL) Pacientes() repository.PacienteRepository  { return fakePacientes{f} }
func (f *fakeDAL) Consultas() repository.ConsultaRepository  { return fakeConsultas{f} }
func (f *fakeDAL) Mediciones() repository.MedicionRepository { return fakeMediciones{f} }
func (f *fakeDAL) Comidas() repository.ComidaRepository      { return fakeComidas{f} }
func (f *fakeDAL) Planes() repository.PlanRepository         { return fakePlanes{f} }
func (f *fakeDAL) Stats() repository.StatsRepository         { return fakeStats{f} }
func (f *fakeDAL) Ping(context.Context) error                { return nil }
func (f *fakeDAL) Close()                                    {}

type fakePacientes struct{ f *fakeDAL }

func (r fakePacientes) List(_ context.Context, profID int64, _ repository.ListPacientesFilter) ([]repository.Paciente, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.listCalls++
	var out []repository.Paciente
	for _, p := range r.f.pacientes {
		if p.ProfesionalID == profID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePacientes) GetByID(_ context.Context, id int64) (*repository.Paciente, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p, ok := r.f.pacientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePacientes) Create(_ context.Context, in repository.CreatePacienteInput) (*repository.Paciente, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p := &repository.Paciente{
		ID: r.f.id(), ProfesionalID: in.ProfesionalID, Nombre: in.Nombre, Apellido: in.Apellido,
		Email: in.Email, FechaNacimiento: in.FechaNacimiento, Activo: true,
	}
	r.f.pacientes[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r fakePacientes) Update(_ context.Context, id int64, in repository.UpdatePacienteInput) (*repository.Paciente, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p, ok := r.f.pacientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Activo != nil {
		p.Activo = *in.Activo
	}
	cp := *p
	return &cp, nil
}

type fakeConsultas struct{ f *fakeDAL }

func (r fakeConsultas) List(_ context.Context, profID int64, filter repository.ListConsultasFilter) ([]repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.listCalls++
	var out []repository.Consulta
	for _, c := range r.f.consultas {
		if c.ProfesionalID == profID && (filter.Estado == "" || c.Estado == filter.Estado) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r fakeConsultas) GetByID(_ context.Context, id int64) (*repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.consultas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeConsultas) Create(_ context.Context, in repository.CreateConsultaInput) (*repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c := &repository.Consulta{
		ID: r.f.id(), ProfesionalID: in.ProfesionalID, PacienteID: in.PacienteID,
		FechaHora: in.FechaHora, DuracionMin: in.DuracionMin, Motivo: in.Motivo,
		Estado: repository.EstadoProgramada,
	}
	r.f.consultas[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r fakeConsultas) Update(_ context.Context, id int64, in repository.UpdateConsultaInput) (*repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.consultas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.FechaHora != nil {
		c.FechaHora = *in.FechaHora
	}
	if in.Notas != nil {
		c.Notas = *in.Notas
	}
	cp := *c
	return &cp, nil
}

func (r fakeConsultas) SetEstado(_ context.Context, id int64, from, to repository.EstadoConsulta) (*repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c, ok := r.f.consultas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if c.Estado != from {
		return nil, repository.ErrConflict
	}
	c.Estado = to
	cp := *c
	return &cp, nil
}

func (r fakeConsultas) NextForPaciente(_ context.Context, pacID int64, now time.Time) (*repository.Consulta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var next *repository.Consulta
	for _, c := range r.f.consultas {
		if c.PacienteID == pacID && c.Estado == repository.EstadoProgramada && !c.FechaHora.Before(now) {
			if next == nil || c.FechaHora.Before(next.FechaHora) {
				next = c
			}
		}
	}
	if next == nil {
		return nil, repository.ErrNotFound
	}
	cp := *next
	return &cp, nil
}

type fakeMediciones struct{ f *fakeDAL }

func (r fakeMediciones) ListByPaciente(_ context.Context, pacID int64, _ int) ([]repository.Medicion, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.listCalls++
	var out []repository.Medicion
	for _, m := range r.f.mediciones {
		if m.PacienteID == pacID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r fakeMediciones) Create(_ context.Context, in repository.CreateMedicionInput) (*repository.Medicion, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	m := repository.Medicion{
		ID: r.f.id(), PacienteID: in.PacienteID, Fecha: in.Fecha,
		PesoKg: in.PesoKg, TallaCm: in.TallaCm, IMC: in.IMC,
	}
	r.f.mediciones = append(r.f.mediciones, m)
	return &m, nil
}

func (r fakeMediciones) Latest(_ context.Context, pacID int64) (*repository.Medicion, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i := len(r.f.mediciones) - 1; i >= 0; i-- {
		if r.f.mediciones[i].PacienteID == pacID {
			m := r.f.mediciones[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeComidas struct{ f *fakeDAL }

func (r fakeComidas) ListByPaciente(_ context.Context, pacID int64, _ *time.Time) ([]repository.RegistroComida, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []repository.RegistroComida
	for _, c := range r.f.comidas {
		if c.PacienteID == pacID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeComidas) Create(_ context.Context, in repository.CreateComidaInput) (*repository.RegistroComida, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c := repository.RegistroComida{ID: r.f.id(), PacienteID: in.PacienteID, Fecha: in.Fecha, Tipo: in.Tipo, Descripcion: in.Descripcion}
	r.f.comidas = append(r.f.comidas, c)
	return &c, nil
}

type fakePlanes struct{ f *fakeDAL }

func (r fakePlanes) ListByPaciente(_ context.Context, pacID int64) ([]repository.PlanDieta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []repository.PlanDieta
	for _, p := range r.f.planes {
		if p.PacienteID == pacID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePlanes) Create(_ context.Context, in repository.CreatePlanInput) (*repository.PlanDieta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i := range r.f.planes {
		if r.f.planes[i].PacienteID == in.PacienteID {
			r.f.planes[i].Activo = false
		}
	}
	p := repository.PlanDieta{
		ID: r.f.id(), PacienteID: in.PacienteID, ProfesionalID: in.ProfesionalID,
		Nombre: in.Nombre, FechaInicio: in.FechaInicio, FechaFin: in.FechaFin, Activo: true,
	}
	r.f.planes = append(r.f.planes, p)
	return &p, nil
}

func (r fakePlanes) Active(_ context.Context, pacID int64) (*repository.PlanDieta, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.planes {
		if p.PacienteID == pacID && p.Activo {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeStats struct{ f *fakeDAL }

func (r fakeStats) Profesional(_ context.Context, profID int64, now time.Time) (*repository.EstadisticasProfesional, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.statsCalls++
	st := &repository.EstadisticasProfesional{
		ProfesionalID:      profID,
		ConsultasPorEstado: map[repository.EstadoConsulta]int{},
		GeneratedAt:        now,
	}
	for _, p := range r.f.pacientes {
		if p.ProfesionalID == profID {
			st.TotalPacientes++
			if p.Activo {
				st.PacientesActivos++
			}
		}
	}
	for _, c := range r.f.consultas {
		if c.ProfesionalID == profID {
			st.ConsultasPorEstado[c.Estado]++
		}
	}
	st.TasaAsistencia = repository.TasaAsistencia(st.ConsultasPorEstado)
	return st, nil
}

func (r fakeStats) Paciente(_ context.Context, pacID int64) (*repository.ConteoPaciente, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := &repository.ConteoPaciente{}
	for _, c := range r.f.consultas {
		if c.PacienteID == pacID {
			out.Consultas++
		}
	}
	for _, m := range r.f.mediciones {
		if m.PacienteID == pacID {
			out.Mediciones++
		}
	}
	for _, c := range r.f.comidas {
		if c.PacienteID == pacID {
			out.Comidas++
		}
	}
	return out, nil
}

// fakeNotifier registra los avisos enviados.
type fakeNotifier struct {
	mu         sync.Mutex
	programada []int64
	cancelada  []int64
	err        error
}

func (n *fakeNotifier) ConsultaProgramada(_ context.Context, c *repository.Consulta) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.programada = append(n.programada, c.ID)
	return n.err
}

func (n *fakeNotifier) ConsultaCancelada(_ context.Context, c *repository.Consulta) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelada = append(n.cancelada, c.ID)
	return n.err
}
