package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/apimarket/internal/domain"
	"github.com/jhoicas/apimarket/internal/domain/entity"
	"github.com/jhoicas/apimarket/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
)

// CategoryRepo categorías en memoria; el nombre es único.
type CategoryRepo struct {
	sc scope
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.sc.write("categories.create", func(s *state) error {
		for _, c := range s.categories {
			if strings.EqualFold(c.Name, category.Name) {
				return domain.ErrDuplicate
			}
		}
		s.seq.category++
		category.ID = s.seq.category
		cp := *category
		s.categories[category.ID] = &cp
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.sc.read("categories.get", func(s *state) error {
		if c, ok := s.categories[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := []*entity.Category{}
	err := r.sc.read("categories.list", func(s *state) error {
		for _, c := range s.categories {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	sc scope
}

func (r *SupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	return r.sc.write("suppliers.create", func(s *state) error {
		s.seq.supplier++
		supplier.ID = s.seq.supplier
		cp := *supplier
		s.suppliers[supplier.ID] = &cp
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.sc.read("suppliers.get", func(s *state) error {
		if v, ok := s.suppliers[id]; ok {
			cp := *v
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	out := []*entity.Supplier{}
	err := r.sc.read("suppliers.list", func(s *state) error {
		for _, v := range s.suppliers {
			cp := *v
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// EmployeeRepo empleados en memoria; el email es único.
type EmployeeRepo struct {
	sc scope
}

func (r *EmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	return r.sc.write("employees.create", func(s *state) error {
		for _, e := range s.employees {
			if strings.EqualFold(e.Email, employee.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		s.seq.employee++
		employee.ID = s.seq.employee
		cp := *employee
		s.employees[employee.ID] = &cp
		return nil
	})
}

func (r *EmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.sc.read("employees.get", func(s *state) error {
		if e, ok := s.employees[id]; ok {
			cp := *e
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.sc.read("employees.get_by_email", func(s *state) error {
		for _, e := range s.employees {
			if strings.EqualFold(e.Email, email) {
				cp := *e
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	out := []*entity.Employee{}
	err := r.sc.read("employees.list", func(s *state) error {
		for _, e := range s.employees {
			cp := *e
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// checkRefs emula las FK de producto y empleado de las tablas de movimientos.
func checkRefs(s *state, productID, employeeID int64) error {
	if _, ok := s.products[productID]; !ok {
		return domain.NewProductError(productID, domain.ErrNotFound)
	}
	if _, ok := s.employees[employeeID]; !ok {
		return domain.NewValidationError("employee_id", "el empleado no existe")
	}
	return nil
}
