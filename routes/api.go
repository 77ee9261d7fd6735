package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/controllers"
	"github.com/doctoraps/clinic-backend/middleware"
	"github.com/doctoraps/clinic-backend/policy"
)

// SetupAPIRoutes mounts the resource surface twice: globally under /api and
// tenant-scoped under /<slug>/api. The handlers are identical; the tenant
// resolver middleware decides what the scoped queries see.
func SetupAPIRoutes(app *fiber.App) {
	registerResources(app.Group("/api"))
	registerResources(app.Group("/:tenant_slug/api"))
}

func registerResources(api fiber.Router) {
	authz := func(resource policy.Resource, action policy.Action) []fiber.Handler {
		return []fiber.Handler{middleware.Protected(), middleware.Authorize(resource, action)}
	}

	tenants := api.Group("/tenants")
	tenants.Get("/", append(authz(policy.ResourceTenants, policy.ActionList), controllers.GetAllTenants)...)
	tenants.Get("/:id", append(authz(policy.ResourceTenants, policy.ActionRead), controllers.GetTenant)...)

	accounts := api.Group("/accounts")
	accounts.Get("/", append(authz(policy.ResourceAccounts, policy.ActionList), controllers.GetAllAccounts)...)
	accounts.Get("/:id", append(authz(policy.ResourceAccounts, policy.ActionRead), controllers.GetAccount)...)
	accounts.Post("/", append(authz(policy.ResourceAccounts, policy.ActionCreate), controllers.Register)...)
	accounts.Patch("/:id", append(authz(policy.ResourceAccounts, policy.ActionUpdate), controllers.UpdateAccount)...)
	accounts.Delete("/:id", append(authz(policy.ResourceAccounts, policy.ActionDelete), controllers.DeactivateAccount)...)

	doctors := api.Group("/doctors")
	doctors.Get("/", append(authz(policy.ResourceDoctors, policy.ActionList), controllers.GetAllDoctors)...)
	doctors.Get("/:id", append(authz(policy.ResourceDoctors, policy.ActionRead), controllers.GetDoctor)...)
	doctors.Post("/", append(authz(policy.ResourceDoctors, policy.ActionCreate), controllers.RegisterDoctor)...)
	doctors.Patch("/:id", append(authz(policy.ResourceDoctors, policy.ActionUpdate), controllers.UpdateDoctor)...)
	doctors.Patch("/:id/approve", append(authz(policy.ResourceDoctors, policy.ActionUpdate), controllers.ApproveDoctor)...)
	doctors.Delete("/:id", append(authz(policy.ResourceDoctors, policy.ActionDelete), controllers.DeleteDoctor)...)

	patients := api.Group("/patients")
	patients.Get("/", append(authz(policy.ResourcePatients, policy.ActionList), controllers.GetAllPatients)...)
	patients.Get("/:id", append(authz(policy.ResourcePatients, policy.ActionRead), controllers.GetPatient)...)
	patients.Post("/", append(authz(policy.ResourcePatients, policy.ActionCreate), controllers.CreatePatient)...)
	patients.Patch("/:id", append(authz(policy.ResourcePatients, policy.ActionUpdate), controllers.UpdatePatient)...)
	patients.Delete("/:id", append(authz(policy.ResourcePatients, policy.ActionDelete), controllers.DeletePatient)...)

	family := api.Group("/family")
	family.Get("/", append(authz(policy.ResourceFamily, policy.ActionList), controllers.GetAllFamilyMembers)...)
	family.Get("/:id", append(authz(policy.ResourceFamily, policy.ActionRead), controllers.GetFamilyMember)...)
	family.Post("/", append(authz(policy.ResourceFamily, policy.ActionCreate), controllers.CreateFamilyMember)...)
	family.Patch("/:id", append(authz(policy.ResourceFamily, policy.ActionUpdate), controllers.UpdateFamilyMember)...)
	family.Delete("/:id", append(authz(policy.ResourceFamily, policy.ActionDelete), controllers.DeleteFamilyMember)...)

	appointments := api.Group("/appointments")
	appointments.Get("/", append(authz(policy.ResourceAppointments, policy.ActionList), controllers.GetAllAppointments)...)
	appointments.Get("/:id", append(authz(policy.ResourceAppointments, policy.ActionRead), controllers.GetAppointment)...)
	appointments.Post("/", append(authz(policy.ResourceAppointments, policy.ActionCreate), controllers.CreateAppointment)...)
	appointments.Patch("/:id", append(authz(policy.ResourceAppointments, policy.ActionUpdate), controllers.UpdateAppointment)...)
	appointments.Delete("/:id", append(authz(policy.ResourceAppointments, policy.ActionDelete), controllers.DeleteAppointment)...)

	prescriptions := api.Group("/prescriptions")
	prescriptions.Get("/", append(authz(policy.ResourcePrescriptions, policy.ActionList), controllers.GetAllPrescriptions)...)
	prescriptions.Get("/:id", append(authz(policy.ResourcePrescriptions, policy.ActionRead), controllers.GetPrescription)...)
	prescriptions.Post("/", append(authz(policy.ResourcePrescriptions, policy.ActionCreate), controllers.CreatePrescription)...)
	prescriptions.Post("/:id/attachment", append(authz(policy.ResourcePrescriptions, policy.ActionUpdate), controllers.UploadPrescriptionAttachment)...)
	prescriptions.Patch("/:id", append(authz(policy.ResourcePrescriptions, policy.ActionUpdate), controllers.UpdatePrescription)...)
	prescriptions.Delete("/:id", append(authz(policy.ResourcePrescriptions, policy.ActionDelete), controllers.DeletePrescription)...)

	payments := api.Group("/payments")
	payments.Get("/", append(authz(policy.ResourcePayments, policy.ActionList), controllers.GetAllPayments)...)
	payments.Get("/:id", append(authz(policy.ResourcePayments, policy.ActionRead), controllers.GetPayment)...)
	payments.Post("/", append(authz(policy.ResourcePayments, policy.ActionCreate), controllers.CreatePayment)...)
	payments.Patch("/:id", append(authz(policy.ResourcePayments, policy.ActionUpdate), controllers.UpdatePayment)...)
	payments.Delete("/:id", append(authz(policy.ResourcePayments, policy.ActionDelete), controllers.DeletePayment)...)

	availability := api.Group("/doctor-availability")
	availability.Get("/", append(authz(policy.ResourceAvailability, policy.ActionList), controllers.GetAllAvailability)...)
	availability.Get("/:id", append(authz(policy.ResourceAvailability, policy.ActionRead), controllers.GetAvailability)...)
	availability.Post("/", append(authz(policy.ResourceAvailability, policy.ActionCreate), controllers.CreateAvailability)...)
	availability.Patch("/:id", append(authz(policy.ResourceAvailability, policy.ActionUpdate), controllers.UpdateAvailability)...)
	availability.Delete("/:id", append(authz(policy.ResourceAvailability, policy.ActionDelete), controllers.DeleteAvailability)...)

	api.Get("/stats", append(authz(policy.ResourceStats, policy.ActionRead), controllers.GetStats)...)
}
