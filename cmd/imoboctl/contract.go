package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/imobo/imobo/internal/billing"
	"github.com/imobo/imobo/internal/contract"
	contractStore "github.com/imobo/imobo/internal/contract/store"
	"github.com/imobo/imobo/internal/payment"
	paymentStore "github.com/imobo/imobo/internal/payment/store"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Manage rental contracts",
}

var contractAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a draft contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenantID, err := uuid.Parse(contractAddFlags.tenant)
		if err != nil {
			return fmt.Errorf("parse tenant id: %w", err)
		}

		ownerID, err := uuid.Parse(contractAddFlags.owner)
		if err != nil {
			return fmt.Errorf("parse owner id: %w", err)
		}

		start, err := time.Parse(time.DateOnly, contractAddFlags.start)
		if err != nil {
			return fmt.Errorf("parse start date: %w", err)
		}

		end, err := time.Parse(time.DateOnly, contractAddFlags.end)
		if err != nil {
			return fmt.Errorf("parse end date: %w", err)
		}

		rent, err := decimal.NewFromString(contractAddFlags.rent)
		if err != nil {
			return fmt.Errorf("parse rent amount: %w", err)
		}

		svc := contract.NewService(contractStore.New(a.db))

		c, err := svc.Create(cmd.Context(), contract.CreateParams{
			TenantID:    tenantID,
			OwnerID:     ownerID,
			PropertyRef: contractAddFlags.property,
			StartDate:   start,
			EndDate:     end,
			RentAmount:  rent,
		})
		if err != nil {
			return err
		}

		fmt.Printf("created contract %s (billing day %d)\n", c.ID, c.BillingDay())

		return nil
	},
}

var contractAddFlags struct {
	tenant   string
	owner    string
	property string
	start    string
	end      string
	rent     string
}

var contractActivateCmd = &cobra.Command{
	Use:   "activate <contract-id>",
	Short: "Activate a draft contract",
	Long: `Activate moves a draft contract to active status. The billing
runner generates its payment schedule on the next sweep; run
"imoboctl schedule generate" to do it immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse contract id: %w", err)
		}

		svc := contract.NewService(contractStore.New(a.db))

		c, err := svc.Activate(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("contract %s is now %s\n", c.ID, c.Status)

		return nil
	},
}

var contractTerminateCmd = &cobra.Command{
	Use:   "terminate <contract-id>",
	Short: "Terminate a contract early",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse contract id: %w", err)
		}

		svc := contract.NewService(contractStore.New(a.db))
		if err := svc.Terminate(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("contract %s terminated\n", id)

		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage payment schedules",
}

var scheduleGenerateCmd = &cobra.Command{
	Use:   "generate <contract-id>",
	Short: "Generate the payment schedule for a contract",
	Long: `Generate computes and persists the monthly payment schedule for an
active contract. A contract that already has payments is skipped unless
--force is given; --force never deletes existing payments, wipe them
first with "imoboctl payments wipe" for a clean regeneration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse contract id: %w", err)
		}

		svc := billing.NewService(contractStore.New(a.db), paymentStore.New(a.db), nil)

		schedule, err := svc.GenerateSchedule(cmd.Context(), id, scheduleForce)
		if err != nil {
			return err
		}

		if len(schedule) == 0 {
			fmt.Println("nothing generated (contract inactive or schedule already exists)")
			return nil
		}

		for _, p := range schedule {
			fmt.Printf("%s  %s  %s\n", p.DueDate.Format(time.DateOnly), p.Amount, p.Status)
		}

		fmt.Printf("generated %d payments for contract %s\n", len(schedule), id)

		return nil
	},
}

var scheduleForce bool

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage payments",
}

var paymentsWipeCmd = &cobra.Command{
	Use:   "wipe <contract-id>",
	Short: "Delete every payment of a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse contract id: %w", err)
		}

		svc := payment.NewService(paymentStore.New(a.db))

		n, err := svc.DeleteByContract(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("deleted %d payments for contract %s\n", n, id)

		return nil
	},
}

func init() {
	contractAddCmd.Flags().StringVar(&contractAddFlags.tenant, "tenant", "", "tenant id")
	contractAddCmd.Flags().StringVar(&contractAddFlags.owner, "owner", "", "owner id")
	contractAddCmd.Flags().StringVar(&contractAddFlags.property, "property", "", "property reference")
	contractAddCmd.Flags().StringVar(&contractAddFlags.start, "start", "", "start date (YYYY-MM-DD)")
	contractAddCmd.Flags().StringVar(&contractAddFlags.end, "end", "", "end date (YYYY-MM-DD)")
	contractAddCmd.Flags().StringVar(&contractAddFlags.rent, "rent", "", "monthly rent amount")
	contractAddCmd.MarkFlagRequired("tenant")
	contractAddCmd.MarkFlagRequired("owner")
	contractAddCmd.MarkFlagRequired("start")
	contractAddCmd.MarkFlagRequired("end")
	contractAddCmd.MarkFlagRequired("rent")

	scheduleGenerateCmd.Flags().BoolVar(&scheduleForce, "force", false,
		"generate even when payments already exist")

	contractCmd.AddCommand(contractAddCmd, contractActivateCmd, contractTerminateCmd)
	scheduleCmd.AddCommand(scheduleGenerateCmd)
	paymentsCmd.AddCommand(paymentsWipeCmd)
	rootCmd.AddCommand(contractCmd, scheduleCmd, paymentsCmd)
}
