package auth

// Action identifica una operación protegida por rol.
type Action string

const (
	ActionUsersManage        Action = "users:manage"
	ActionPetsCreate         Action = "pets:create"
	ActionPetsCreateAdmin    Action = "pets:create_admin"
	ActionPetsListOwn        Action = "pets:list_own"
	ActionPetsManage         Action = "pets:manage"
	ActionAccessoriesManage  Action = "accessories:manage"
	ActionAppointmentsServe  Action = "appointments:provider_view"
	ActionAppointmentsAll    Action = "appointments:list_all"
	ActionOrdersSales        Action = "orders:sales_view"
	ActionOrdersAll          Action = "orders:list_all"
	ActionOrdersUpdateStatus Action = "orders:update_status"
	ActionOrdersDelete       Action = "orders:delete"
)

// permissions es la tabla declarativa acción -> roles permitidos.
// Toda decisión de rol pasa por aquí; los handlers solo agregan checks
// de ownership (ej: seller solo edita sus propias mascotas).
var permissions = map[Action][]Role{
	ActionUsersManage:        {RoleAdmin},
	ActionPetsCreate:         {RoleSeller},
	ActionPetsCreateAdmin:    {RoleAdmin},
	ActionPetsListOwn:        {RoleSeller},
	ActionPetsManage:         {RoleSeller, RoleAdmin},
	ActionAccessoriesManage:  {RoleAdmin},
	ActionAppointmentsServe:  {RoleVet, RoleWalker, RoleDaycare},
	ActionAppointmentsAll:    {RoleAdmin},
	ActionOrdersSales:        {RoleSeller, RoleVet, RoleWalker, RoleDaycare},
	ActionOrdersAll:          {RoleAdmin},
	ActionOrdersUpdateStatus: {RoleSeller, RoleVet, RoleWalker, RoleDaycare, RoleAdmin},
	ActionOrdersDelete:       {RoleAdmin},
}

// Allowed responde si el rol puede ejecutar la acción.
func Allowed(a Action, r Role) bool {
	for _, allowed := range permissions[a] {
		if allowed == r {
			return true
		}
	}
	return false
}
