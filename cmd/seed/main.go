package main

import (
	"os"

	"itsupport/internal/app/ds"
	"itsupport/internal/app/dsn"
	"itsupport/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var plans = []ds.ServicePlan{
	{
		Code:         ds.PlanBasic,
		Name:         "Basic",
		MonthlyPrice: 600,
		Description:  "Idéal pour les très petites entreprises ou les indépendants.",
		Features: "Support à distance\n" +
			"Maintenance mensuelle\n" +
			"Jusqu'à 3 postes\n" +
			"2 heures d'assistance par mois\n" +
			"Temps de réponse sous 48h",
	},
	{
		Code:         ds.PlanStandard,
		Name:         "Standard",
		MonthlyPrice: 1200,
		Description:  "Parfait pour les petites entreprises en pleine croissance.",
		Popular:      true,
		Features: "Tous les services Basic\n" +
			"Assistance sur site\n" +
			"Jusqu'à 10 postes\n" +
			"5 heures d'assistance par mois\n" +
			"Temps de réponse sous 24h\n" +
			"Audit annuel\n" +
			"Conseils d'optimisation",
	},
	{
		Code:         ds.PlanPro,
		Name:         "Pro",
		MonthlyPrice: 2000,
		Description:  "La solution complète pour les entreprises établies.",
		Features: "Tous les services Standard\n" +
			"Intervention prioritaire\n" +
			"Plus de 10 postes\n" +
			"10 heures d'assistance par mois\n" +
			"Temps de réponse sous 12h\n" +
			"Audit semestriel\n" +
			"Conseils personnalisés\n" +
			"Support téléphonique dédié",
	},
}

var offerings = []ds.ServiceOffering{
	{
		Code:        ds.ServiceAudit,
		Name:        "Audit informatique",
		Description: "Évaluation complète de votre infrastructure informatique pour identifier les faiblesses et proposer des améliorations.",
		Icon:        "🔍",
	},
	{
		Code:        ds.ServiceMaintenance,
		Name:        "Maintenance mensuelle",
		Description: "Service proactif de maintenance pour garantir le bon fonctionnement de vos systèmes informatiques.",
		Icon:        "🔧",
	},
	{
		Code:        ds.ServiceRemote,
		Name:        "Support à distance",
		Description: "Assistance technique à distance rapide pour résoudre vos problèmes sans délai.",
		Icon:        "💻",
	},
	{
		Code:        ds.ServiceHardware,
		Name:        "Remplacement matériel",
		Description: "Service de remplacement et d'installation de matériel informatique défectueux.",
		Icon:        "🖥️",
	},
	{
		Code:        ds.ServiceSecurity,
		Name:        "Sécurité informatique",
		Description: "Protection complète de vos données et systèmes contre les menaces informatiques.",
		Icon:        "🔒",
	},
	{
		Code:        ds.ServiceNetwork,
		Name:        "Gestion de réseau",
		Description: "Installation et gestion de réseaux informatiques pour une connectivité optimale.",
		Icon:        "📡",
	},
}

func main() {
	_ = godotenv.Load()

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	for _, plan := range plans {
		if err := repo.UpsertServicePlan(plan); err != nil {
			logrus.Fatalf("Error seeding plan %s: %v", plan.Code, err)
		}
	}
	for _, offering := range offerings {
		if err := repo.UpsertServiceOffering(offering); err != nil {
			logrus.Fatalf("Error seeding offering %s: %v", offering.Code, err)
		}
	}
	logrus.Infof("Seeded %d plans and %d offerings", len(plans), len(offerings))

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Error hashing admin password: %v", err)
	}
	if err := repo.EnsureAdminUser("admin@itsupport.ma", string(hash), "Administrateur"); err != nil {
		logrus.Fatalf("Error creating admin account: %v", err)
	}
	logrus.Info("Admin account ready")
}
